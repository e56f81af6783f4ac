package constant

import _ "embed"

// ArcPrefixes is the built-in arc title to video id prefix table, as a JSON object.
// It can be replaced at runtime through the catalog.arcs config key.
//
//go:embed arcs.json
var ArcPrefixes []byte

// Specials lists the named anime specials that carry no episode numbers.
var Specials = []string{"Nami", "Luffy", "Merry", "Sabo", "East Blue", "Sky Island"}
