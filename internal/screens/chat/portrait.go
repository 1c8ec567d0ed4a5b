package chat

import "github.com/abhisek/eternal/internal/domain"

// portraits maps a profile's portrait key to a small glyph block.
var portraits = map[string]string{
	"EASTERN_MALE": `  ▄███▄
 ▐ ◉ ◉ ▌
  ▐ ═ ▌
 ╱█▓▓▓█╲`,
	"EASTERN_FEMALE": ` ✿▄███▄✿
 ▐ ◉ ◉ ▌
  ▐ ‿ ▌
 ╱▓▒▒▒▓╲`,
	"WESTERN_MALE": `  ╓───╖
 ▐ ● ● ▌
  ▐ ─ ▌
 ╱▓███▓╲`,
	"WESTERN_FEMALE": ` ∿╓───╖∿
 ▐ ● ● ▌
  ▐ ‿ ▌
 ╱▒▓▓▓▒╲`,
	"MIDDLE_EASTERN_MALE": ` ▄▀▀▀▀▀▄
 ▐ ● ● ▌
  ▐ ─ ▌
 ╱░███░╲`,
	"MIDDLE_EASTERN_FEMALE": ` ▄▀▀▀▀▀▄
 ▐ ◕ ◕ ▌
  ▐ ‿ ▌
 ╱░▓▓▓░╲`,
}

// portraitFor returns the glyph for p, falling back to the western male
// portrait for any key without artwork.
func portraitFor(p *domain.Profile) string {
	if art, ok := portraits[p.PortraitKey()]; ok {
		return art
	}
	return portraits["WESTERN_MALE"]
}
