package suggest

// visualLetterGroups lists runes that look alike. A substitution inside one
// group is cheap. Each group gets one bit of a 64 bit mask, so a rune may sit
// in several groups.
var visualLetterGroups = []string{
	"aAàáâãäåāăąǎǻÀÁÂÃÄÅĀĂĄǍǺªаА",
	"bBƀɓƁ",
	"cCçćĉċčÇĆĈĊČсС",
	"dDďđĎĐ",
	"eEèéêëēĕėęěÈÉÊËĒĔĖĘĚеЕ",
	"fFƒ",
	"gGĝğġģĜĞĠĢ",
	"hHĥħĤĦ",
	"iIìíîïĩīĭįıÌÍÎÏĨĪĬĮİ",
	"jJĵĴ",
	"kKķĶкК",
	"lLĺļľŀłĹĻĽĿŁ",
	"mMмМ",
	"nNñńņňŉÑŃŅŇ",
	"oOòóôõöøōŏőÒÓÔÕÖØŌŎŐºоО",
	"pPрР",
	"qQ",
	"rRŕŗřŔŖŘ",
	"sSśŝşšŚŜŞŠß",
	"tTţťŧŢŤŦт",
	"uUùúûüũūŭůűųÙÚÛÜŨŪŬŮŰŲ",
	"vV",
	"wWŵŴ",
	"xXхХ",
	"yYýÿŷÝŸŶуУ",
	"zZźżžŹŻŽ",
	"æÆ",
	"œŒ",
	"þÞ",
	"ðÐ",
	"il1|!",
	"oO0",
	"sS5$",
	"zZ2",
	"bB8",
	"gq9",
	"'’‘`´",
	"\"“”„",
	"-‐‑‒–—",
}

var visualLetterMasks = buildVisualLetterMasks(visualLetterGroups)

func buildVisualLetterMasks(groups []string) map[rune]uint64 {
	m := make(map[rune]uint64)
	for i, g := range groups {
		bit := uint64(1) << uint(i)
		for _, r := range g {
			m[r] |= bit
		}
	}
	return m
}

func visualMask(r rune) uint64 {
	return visualLetterMasks[r]
}
