// Package locale holds the text catalogue for developer-facing output
package locale

import (
	_ "embed"
	"strings"

	"github.com/leonelquinteros/gotext"

	"blobdungeon/pkg/game/lattice"
)

//go:embed en.po
var enPo []byte

var catalogue = newCatalogue()

func newCatalogue() *gotext.Po {
	po := gotext.NewPo()
	po.Parse(enPo)
	return po
}

// Get returns the message for key formatted with vars. Unknown keys are
// returned as they are.
func Get(key string, vars ...interface{}) string {
	msgid := key
	return catalogue.Get(msgid, vars...)
}

// TileName returns the display name of an archetype
func TileName(a lattice.Archetype) string {
	return Get("TILE_" + strings.ToUpper(a.String()))
}
