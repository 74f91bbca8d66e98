package reco

const (
	defaultItemsFromHistory     = 5
	defaultCovisitsPerItem      = 40
	defaultCandidatesPerSession = 200
	defaultTopK                 = 20
)

// Config carries the candidate generation and ranking knobs. Zero values
// mean "use the serving default".
type Config struct {
	// how many of the most recent history items seed co-visitation lookups
	ItemsFromHistory int

	// neighbors pulled per seed item
	CovisitsPerItem int

	// hard cap on the candidate pool per session
	CandidatesPerSession int

	// final list length per event type
	TopK int

	// tree count hint applied to native model files; 0 means all trees
	NativeIterations int
}

// DefaultConfig returns the serving defaults applied wherever a knob is
// left unset.
func DefaultConfig() Config {
	return Config{
		ItemsFromHistory:     defaultItemsFromHistory,
		CovisitsPerItem:      defaultCovisitsPerItem,
		CandidatesPerSession: defaultCandidatesPerSession,
		TopK:                 defaultTopK,
	}
}

// Normalize fills missing or out-of-range knobs from DefaultConfig.
func (c Config) Normalize() Config {
	out := c
	def := DefaultConfig()

	if out.ItemsFromHistory <= 0 {
		out.ItemsFromHistory = def.ItemsFromHistory
	}
	if out.CovisitsPerItem <= 0 {
		out.CovisitsPerItem = def.CovisitsPerItem
	}
	if out.CandidatesPerSession <= 0 {
		out.CandidatesPerSession = def.CandidatesPerSession
	}
	if out.TopK <= 0 {
		out.TopK = def.TopK
	}
	if out.NativeIterations < 0 {
		out.NativeIterations = 0
	}

	return out
}
