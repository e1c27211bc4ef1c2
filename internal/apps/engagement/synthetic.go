package engagement

import (
	"math/rand/v2"
	"time"
)

const (
	DefaultSyntheticReviews  = 8
	DefaultSyntheticComments = 6
	MaxSyntheticPerKind      = 20
	MaxSyntheticTextLength   = 500

	reviewBackdateDays  = 30
	commentBackdateDays = 14
)

// PseudoAuthor is a system-owned identity used for generated engagement.
type PseudoAuthor struct {
	Name      string
	AvatarURL string
}

func avatar(seed string) string {
	return "https://api.dicebear.com/7.x/bottts/svg?seed=" + seed
}

var PseudoAuthors = []PseudoAuthor{
	{"GhostRider_X", avatar("ghost")},
	{"ProGamer2025", avatar("pro")},
	{"NightWolf_99", avatar("wolf")},
	{"ShadowBlade", avatar("shadow")},
	{"PixelKing", avatar("pixel")},
	{"GameMaster_01", avatar("master")},
	{"TurboNinja", avatar("turbo")},
	{"DarkPhoenix", avatar("phoenix")},
	{"CyberWolf_X", avatar("cyber")},
	{"ViperStrike", avatar("viper")},
	{"AceGamer_77", avatar("ace")},
	{"BlazeFury", avatar("blaze")},
	{"StormBreaker", avatar("storm")},
	{"IronClad_GG", avatar("iron")},
	{"ZeroLag", avatar("zero")},
	{"LunarEclipse", avatar("lunar")},
	{"NoobSlayer_X", avatar("noob")},
	{"ThunderBolt", avatar("thunder")},
	{"SilentKiller", avatar("silent")},
	{"MaverickGG", avatar("maverick")},
}

// PseudoAuthorNames lists the usernames held back from registration.
func PseudoAuthorNames() []string {
	names := make([]string, len(PseudoAuthors))
	for i, a := range PseudoAuthors {
		names[i] = a.Name
	}
	return names
}

// ReviewTemplates back the generator when no AI text is available, keyed by rating.
var ReviewTemplates = map[int][]string{
	5: {
		"Absolutely amazing! Best mobile port I have ever played. Runs perfectly on my phone.",
		"This is incredible, the graphics are insane for mobile. 10/10 would recommend!",
		"Perfect game, been playing for hours. The controls feel great on touchscreen.",
		"Love everything about this. The devs did an amazing job porting this to mobile.",
		"Wow just wow, this runs so smooth on my device. Best download from ModXnet!",
		"Can not believe this is running on my phone. Absolutely flawless experience!",
		"Outstanding mobile version! Every detail is perfect, runs like butter.",
		"This game is a masterpiece on mobile. Downloaded it from ModXnet and never looked back.",
	},
	4: {
		"Really solid game. A few minor bugs but overall an amazing experience.",
		"Great port, plays well on mobile. Would love to see more updates.",
		"Almost perfect! Runs great, controls are good. Just needs a bit more optimization.",
		"Really enjoying this one. Smooth gameplay and great graphics for mobile.",
		"Very good game, the mobile controls take some getting used to but its worth it.",
		"Impressive mobile version! A couple of small issues but nothing major.",
		"Solid 4 stars! Great gameplay, good graphics, runs well on most devices.",
		"Downloaded yesterday and cant stop playing. Great mobile experience overall.",
	},
	3: {
		"Decent game, fun to play but has some performance issues on older phones.",
		"Its okay, the game itself is good but needs better optimization.",
		"Average experience, good game but the mobile port could be better.",
	},
}

var CommentTemplates = []string{
	"Anyone else playing this? Graphics are sick!",
	"Works great on my Samsung, downloading now for my iPad too",
	"How do I get past the first level? Any tips?",
	"This is the best mobile port I have seen in a while",
	"Just downloaded, the file size is reasonable and it runs smooth",
	"ModXnet always has the best versions, thanks!",
	"Been waiting for this one to come to mobile, finally!",
	"The controls are surprisingly good on touchscreen",
	"Playing this on my lunch break every day now lol",
	"My friends dont believe this runs on mobile until I show them",
	"Does this work offline? Would be great for flights",
	"Just finished the main story, what an experience on mobile!",
	"The graphics quality is way better than I expected",
	"Smooth 60fps on my phone, really impressed",
	"Downloaded this last week and already have 20 hours in it",
}

// RandomPastDate returns now minus 1..maxDaysAgo whole days and 0..23 hours.
func RandomPastDate(now time.Time, maxDaysAgo int, rng *rand.Rand) time.Time {
	if maxDaysAgo < 1 {
		maxDaysAgo = 1
	}
	days := rng.IntN(maxDaysAgo) + 1
	hours := rng.IntN(24)
	return now.Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour)
}

// templateRating draws 5 stars 60% of the time, 4 stars 30% and 3 stars 10%.
func templateRating(rng *rand.Rand) int {
	switch f := rng.Float64(); {
	case f < 0.6:
		return 5
	case f < 0.9:
		return 4
	default:
		return 3
	}
}

func templateReviews(n int, rng *rand.Rand) []syntheticReview {
	out := make([]syntheticReview, 0, n)
	for i := 0; i < n; i++ {
		rating := templateRating(rng)
		pool := ReviewTemplates[rating]
		out = append(out, syntheticReview{rating: rating, text: pool[rng.IntN(len(pool))]})
	}
	return out
}

func templateComments(n int, rng *rand.Rand) []string {
	pool := shuffled(CommentTemplates, rng)
	return pool[:min(n, len(pool))]
}

func shuffled[T any](in []T, rng *rand.Rand) []T {
	out := append([]T(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// syntheticCount applies the default for non-positive input and the per-kind cap.
func syntheticCount(requested, fallback int) int {
	if requested <= 0 {
		requested = fallback
	}
	return min(requested, MaxSyntheticPerKind)
}

func clampRating(r int) int {
	return max(1, min(5, r))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

type syntheticReview struct {
	rating int
	text   string
}
