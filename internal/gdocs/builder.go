package gdocs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ajayambaliya/mcqcurrent/internal/content"
)

// DocumentService is the remote surface the builder writes through.
type DocumentService interface {
	CreateDocument(ctx context.Context, title string) (string, error)
	BatchUpdate(ctx context.Context, documentID string, requests []Request) error
}

// Builder writes one remote document per category. Each document owns its
// own cursor inside BuildRequests; builders for independent categories may
// run concurrently.
type Builder struct {
	Service DocumentService
	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// BuildCategory creates and fills the document for one category. An empty
// block sequence produces no creation call at all.
func (b *Builder) BuildCategory(ctx context.Context, category string, blocks []content.Block) error {
	if len(blocks) == 0 {
		return nil
	}
	now := b.now()
	title := now.Format("January 2006") + " - " + category
	docID, err := b.Service.CreateDocument(ctx, title)
	if err != nil {
		return err
	}
	log.Info().Str("title", title).Str("id", docID).Msg("created remote document")
	return b.Service.BatchUpdate(ctx, docID, BuildRequests(blocks, now))
}
