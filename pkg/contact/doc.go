// Package contact implements the site's contact form: the fixed JSON payload,
// its validation, the browser-facing form state, the outbound client, and the
// relay that receives submissions and stores them in an inbox.
package contact
