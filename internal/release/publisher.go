// Package release implements the sockbot release pipeline: extract a version
// from the project manifest, publish a release and write the matching git tag.
package release

import (
	"context"
)

// Options describes the release to publish
type Options struct {
	TagName string // Tag the release is named after (e.g. "v1.2.3")
	Notes   string // Release body; generated from commit history when empty
	Draft   bool   // Create the release as a draft
}

// Info describes a published release
type Info struct {
	Owner   string
	Repo    string
	TagName string
	Name    string
	URL     string
	Draft   bool
}

// Publisher drafts or publishes a release on a hosting service. It is an
// opaque collaborator as far as the pipeline is concerned: a failure aborts
// the run before any tag is created.
type Publisher interface {
	Publish(ctx context.Context, opts Options) (*Info, error)
}
