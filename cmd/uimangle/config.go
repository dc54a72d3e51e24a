package main

// Config holds the command-line arguments controlling one mangling run:
// where to read .ui and .lang sources from, where to write the flattened
// output and generated Java classes, and a few behavior toggles.
type Config struct {
	ResourcesRoot           string
	UIRoot                  string
	UIOut                   string
	JavaOut                 string
	JavaPackage             string
	JavaRoot                string
	LangRoot                string
	LangClassFile           string
	LangClassName           string
	IncludeMacroOnly        bool
	Verbose                 bool
	WarnDuplicateProperties bool
}

const defaultJavaPackage = "MBRound18.hytale.shared.interfaces.ui.generated"
