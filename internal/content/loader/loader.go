package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

// Loader implements content.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	token     string
}

var _ content.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options content.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		token:     options.AccessToken,
	}
}

// Load fetches a bundle from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src content.Source) (content.Document, error) {
	if src == nil {
		return content.Document{}, errors.New("content loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case content.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case content.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case content.SourceKindURL:
		if !l.allowHTTP {
			return content.Document{}, errors.New("content loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.token, l.timeout)
	default:
		err = errors.New("content loader: unsupported source kind")
	}
	if err != nil {
		return content.Document{}, err
	}

	return content.NewDocument(src, data)
}
