package catalog

// defaultSongs is the catalog shipped with cadence, keyed by genre.
// Entries are "Title - Artist".
var defaultSongs = map[string][]string{
	"Classical": {
		"Black Swan - BTS", "Feel My Rhythm - Red Velvet", "Miracles in December - EXO",
		"Summer Rain - Gfriend", "Nxde - (G)I-dle", "Butterfly - Loona",
		"Angel - NCT 127", "Secret Garden - Oh My Girl",
	},
	"Ballad": {
		"This Love - Davichi", "If It Is You - Jung Seunghwan", "Fine - Taeyeon",
		"Me After You - Paul Kim", "Breathe - Lee Hi", "Unspoken Words - Davichi",
		"Through the Night - IU", "You, Clouds, Rain - Heize", "Hug Me - Jung Joon Il",
	},
	"Hip-hop": {
		"Any Song - Zico", "Spicy - CL", "Zoom - Jessi", "Mommae - Jay Park",
		"Daechwita - Agust D", "Law - Bibi", "Uh Oh - (G)I-dle", "Don't Go Insane - DPR Ian",
	},
	"EDM": {
		"Bang Bang Bang - Big Bang", "Crazy - Le Sserafim", "POP/STARS - K/DA",
		"Hard Carry - GOT7", "Whiplash - Aespa", "Rising Sun - TVXQ",
		"DDU-DU DDU-DU - Blackpink", "Follow - Monsta X", "Cherry Bomb - NCT 127",
		"Kick It - NCT 127",
	},
	"Pop": {
		"Likey - Twice", "Lovesick Girls - Blackpink", "Shhh - Kiss Of Life",
		"Left & Right - Seventeen", "Say My Name - ZB1", "Cheer Up - Twice",
		"Boy With Luv - BTS", "Dynamite - BTS", "Fancy - Twice",
		"Butter - BTS",
	},
}

// seedOrder keeps insertion deterministic so song IDs are stable
// across fresh databases.
var seedOrder = []string{"Classical", "Ballad", "Hip-hop", "EDM", "Pop"}
