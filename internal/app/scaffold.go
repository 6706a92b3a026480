package app

import (
	"path/filepath"
	"strings"
	"unicode"

	"go.trai.ch/cargoc/internal/core/domain"
)

const mainSource = `int main(int argc, char **argv) {
	return 0;
}
`

type scaffoldFile struct {
	path    string
	content string
}

// scaffold returns the manifest and the starter files of a new project.
func scaffold(name string, kind domain.TargetKind) (*domain.ProjectManifest, []scaffoldFile) {
	m := &domain.ProjectManifest{
		Name:   name,
		OutDir: domain.DefaultOutDir,
		Kind:   kind,
	}

	if !kind.IsLibrary() {
		m.Sources = []string{domain.DefaultSource}
		return m, []scaffoldFile{{path: domain.DefaultSource, content: mainSource}}
	}

	header := filepath.Join("include", name+".h")
	m.Sources = []string{"src/lib.c"}
	m.Compiler.Includes = []string{"include"}
	m.Headers = []string{"include"}

	return m, []scaffoldFile{
		{path: filepath.Join("src", "lib.c"), content: "#include \"" + name + ".h\"\n"},
		{path: header, content: headerSource(name)},
	}
}

func headerSource(name string) string {
	guard := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, name) + "_H"

	return "#ifndef " + guard + "\n#define " + guard + "\n\n#endif\n"
}
