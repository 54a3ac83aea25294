package wordstore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ishirchatnani/wordle-clone/internal/words"
)

// SeedIfEmpty copies the lists of lx into the store when it holds no answers.
func (s *Store) SeedIfEmpty(ctx context.Context, source string, lx *words.Lexicon) error {
	n, _, err := s.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count words: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := s.Seed(ctx, source, lx.Answers(), lx.Allowed()); err != nil {
		return fmt.Errorf("seed words: %w", err)
	}
	log.Info().Str("source", source).Stringer("lexicon", lx).Msg("seeded word database")
	return nil
}

// Lexicon builds a words.Lexicon from the stored lists.
func (s *Store) Lexicon(ctx context.Context, strict bool) (*words.Lexicon, error) {
	answers, allowed, err := s.Lists(ctx)
	if err != nil {
		return nil, fmt.Errorf("read word lists: %w", err)
	}
	return words.FromLists(answers, allowed, strict)
}
