package storage

import "context"

type Kind string

const (
	KindRelational Kind = "relational"
	KindFlatFile   Kind = "flatfile"
)

type Backend struct {
	Kind     Kind
	Accounts AccountStore
	Payments PaymentStore
}

// Selector picks the backend for a call: the relational one whenever the
// probe reports it reachable, the flat files otherwise.
type Selector struct {
	probe      Prober
	relational Backend
	flatFile   Backend
}

func NewSelector(probe Prober, relational, flatFile Backend) *Selector {
	relational.Kind = KindRelational
	flatFile.Kind = KindFlatFile
	return &Selector{
		probe:      probe,
		relational: relational,
		flatFile:   flatFile,
	}
}

func (s *Selector) RelationalAvailable(ctx context.Context) bool {
	return s.probe != nil && s.relational.Accounts != nil && s.probe.Available(ctx)
}

func (s *Selector) Active(ctx context.Context) Backend {
	if s.RelationalAvailable(ctx) {
		return s.relational
	}
	return s.flatFile
}

func (s *Selector) Relational() Backend {
	return s.relational
}

func (s *Selector) FlatFile() Backend {
	return s.flatFile
}
