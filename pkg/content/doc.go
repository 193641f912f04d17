// Package content models the read-only CMS records (pages, content containers,
// content blocks, menus, news posts) rendered by the site, together with the
// source/loader contracts used to fetch them and a repository indexing them by
// locale and slug.
package content
