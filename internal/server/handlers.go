package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-cmsfront/internal/logger"
	"github.com/goliatone/go-cmsfront/pkg/contact"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/render"
)

const htmlContentType = "text/html; charset=utf-8"

// StatusQuery carries the outcome of a browser form post across the
// post/redirect/get hop.
const StatusQuery = "contact"

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"locales": s.site.Repository().Locales(),
	})
}

func (s *Server) index(c *gin.Context) {
	locale := s.negotiator.Negotiate(c.GetHeader("Accept-Language"))
	c.Header("Vary", "Accept-Language")
	c.Redirect(http.StatusFound, content.PagePath(locale, content.HomeSlug))
}

func (s *Server) renderOptions(c *gin.Context, locale string) render.RenderOptions {
	return render.RenderOptions{
		Locale:     locale,
		Path:       c.Request.URL.Path,
		Translator: s.translator,
	}
}

func (s *Server) page(c *gin.Context) {
	locale := c.Param("locale")
	opts := s.renderOptions(c, locale)
	switch c.Query(StatusQuery) {
	case contact.OutcomeSuccess.String():
		opts.Status = opts.T(contact.LabelSuccess)
	case contact.OutcomeFailure.String():
		opts.Status = opts.T(contact.LabelFailure)
	}

	body, err := s.site.RenderPage(c.Request.Context(), locale, c.Param("slug"), opts)
	s.respond(c, http.StatusOK, locale, body, err)
}

func (s *Server) newsPost(c *gin.Context) {
	locale := c.Param("locale")
	body, err := s.site.RenderNewsPost(c.Request.Context(), locale, c.Param("slug"), s.renderOptions(c, locale))
	s.respond(c, http.StatusOK, locale, body, err)
}

func (s *Server) noRoute(c *gin.Context) {
	locale, _, _ := strings.Cut(strings.TrimPrefix(c.Request.URL.Path, "/"), "/")
	s.notFound(c, locale)
}

func (s *Server) respond(c *gin.Context, status int, locale string, body []byte, err error) {
	if err == nil {
		c.Data(status, htmlContentType, body)
		return
	}
	switch {
	case errors.Is(err, content.ErrLocaleNotFound),
		errors.Is(err, content.ErrPageNotFound),
		errors.Is(err, content.ErrNewsPostNotFound):
		s.notFound(c, locale)
	case errors.Is(err, context.Canceled):
		logger.FromGin(c).Debug("request canceled while rendering", zap.Error(err))
		c.Status(http.StatusServiceUnavailable)
	default:
		logger.FromGin(c).Error("render page", zap.Error(err))
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func (s *Server) notFound(c *gin.Context, locale string) {
	body, err := s.site.RenderNotFound(c.Request.Context(), locale, s.renderOptions(c, locale))
	if err != nil {
		logger.FromGin(c).Error("render not found page", zap.Error(err))
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	c.Data(http.StatusNotFound, htmlContentType, body)
}

// postContact handles the contact form when the browser posts it without
// JavaScript. Success redirects back to the page; validation errors and
// delivery failures re-render the page with the values kept.
func (s *Server) postContact(c *gin.Context) {
	locale := c.Param("locale")
	if !s.site.Repository().HasLocale(locale) {
		s.notFound(c, locale)
		return
	}
	log := logger.FromGin(c)

	// gin's PostForm drops parse errors, so an oversized body has to be
	// caught here.
	if err := c.Request.ParseForm(); err != nil && bodyTooLarge(err) {
		abortTooLarge(c)
		return
	}

	slug := strings.TrimSpace(c.PostForm(render.HiddenPage))
	if slug == "" {
		slug = content.HomeSlug
	}
	target := content.PagePath(locale, slug)

	var submission contact.Submission
	if err := c.ShouldBind(&submission); err != nil {
		if bodyTooLarge(err) {
			abortTooLarge(c)
			return
		}
		log.Debug("bind contact form", zap.Error(err))
		opts := s.renderOptions(c, locale)
		opts.Path = target
		opts.FormErrors = []string{"contact.error.invalid"}
		opts.Values = submission.Values()
		s.renderForm(c, http.StatusBadRequest, locale, slug, opts)
		return
	}

	if submission.IsBot() {
		log.Info("contact form dropped by honeypot", zap.String("client_ip", c.ClientIP()))
		c.Redirect(http.StatusSeeOther, target+"?"+StatusQuery+"="+contact.OutcomeSuccess.String())
		return
	}

	submission = submission.Normalize()
	opts := s.renderOptions(c, locale)
	opts.Path = target

	if err := s.validator.Validate(submission); err != nil {
		var invalid *contact.ValidationError
		if !errors.As(err, &invalid) {
			log.Error("validate contact form", zap.Error(err))
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		mapping := render.MapErrorPayload(contact.FormFields, invalid.Fields)
		opts.Values = submission.Values()
		opts.Errors = mapping.Fields
		opts.FormErrors = render.MergeFormErrors(opts.FormErrors, mapping.Form...)
		s.renderForm(c, http.StatusUnprocessableEntity, locale, slug, opts)
		return
	}

	sender, err := s.submitter(c)
	if err != nil {
		log.Error("resolve contact endpoint", zap.Error(err))
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	form := contact.NewForm()
	form.Values = submission
	outcome, err := form.Submit(c.Request.Context(), sender, func(key string) string { return opts.T(key) })
	if outcome == contact.OutcomeSuccess {
		c.Redirect(http.StatusSeeOther, target+"?"+StatusQuery+"="+outcome.String())
		return
	}
	log.Warn("contact submission failed", zap.Error(err))
	opts.Values = form.Values.Values()
	opts.Status = form.StatusLabel
	s.renderForm(c, http.StatusBadGateway, locale, slug, opts)
}

func (s *Server) renderForm(c *gin.Context, status int, locale, slug string, opts render.RenderOptions) {
	body, err := s.site.RenderPage(c.Request.Context(), locale, slug, opts)
	s.respond(c, status, locale, body, err)
}

// submitter picks how a browser post is delivered: in process when the
// client targets the locally mounted relay, over HTTP otherwise.
func (s *Server) submitter(c *gin.Context) (contact.Submitter, error) {
	if s.relay != nil && s.contact.Endpoint() == contact.RelayPath {
		return relaySubmitter{relay: s.relay, meta: contact.Meta{
			RequestID:  logger.GinRequestID(c),
			RemoteAddr: c.ClientIP(),
		}}, nil
	}
	return s.contact.Resolve(requestBase(c))
}

type relaySubmitter struct {
	relay *contact.Relay
	meta  contact.Meta
}

func (r relaySubmitter) Submit(ctx context.Context, submission contact.Submission) error {
	_, err := r.relay.Accept(ctx, submission, r.meta)
	return err
}

func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return (&url.URL{Scheme: scheme, Host: c.Request.Host}).String()
}

// relayContact is the JSON endpoint the browser script posts to.
func (s *Server) relayContact(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if bodyTooLarge(err) {
		abortTooLarge(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable body"})
		return
	}

	result, err := s.relay.Handle(c.Request.Context(), body, contact.Meta{
		RequestID:  logger.GinRequestID(c),
		RemoteAddr: c.ClientIP(),
	})
	if err != nil {
		var invalid *contact.ValidationError
		switch {
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid submission", "fields": invalid.Fields})
		case errors.Is(err, contact.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
		default:
			logger.FromGin(c).Error("contact relay", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}
	if result.Dropped {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": result.ID})
}
