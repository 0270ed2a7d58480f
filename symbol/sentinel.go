package symbol

// Designated sentinel symbols used by lattices (lattice.Arc.Label) and
// grammars. Interned once at package init so every caller observes the
// same ids.
var (
	Epsilon = Intern("<epsilon>")
	BOS     = Intern("<s>")
	EOS     = Intern("</s>")
	None    = Intern("<none>")

	// Goal is the designated non-terminal the orchestrator's compose
	// stages attach their top-level output edge under.
	Goal = Intern("[GOAL]")
)
