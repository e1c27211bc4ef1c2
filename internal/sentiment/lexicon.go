package sentiment

// BadWords are matched as lowercase substrings. Each entry found counts once
// toward the score and toward the bad-word tally.
var BadWords = []string{
	"fuck", "shit", "damn", "ass", "bitch", "bastard", "dick", "crap", "piss",
	"idiot", "stupid", "dumb", "moron", "loser", "suck", "sucks", "sucked",
	"wtf", "stfu", "lmao", "trash", "garbage", "worst", "terrible", "horrible",
	"pathetic", "useless", "worthless", "disgusting", "awful", "hate", "hated",
	"scam", "fake", "virus", "malware", "steal", "stolen", "fraud", "ripoff",
	"rip off", "dont download", "don't download", "do not download", "warning",
	"waste of time", "waste of money", "clickbait", "spam", "phishing",
	"broken", "doesnt work", "doesn't work", "does not work", "not working",
	"crashed", "crashes", "laggy", "unplayable", "refund", "delete this",
	"never", "ruined", "disaster", "joke", "laughable", "embarrassing",
}

// NegativePhrases lower the score but do not count toward the bad-word tally.
var NegativePhrases = []string{
	"waste of", "piece of", "load of", "pile of", "bunch of crap", "do not",
	"dont", "don't", "never download", "stay away", "complete garbage",
	"total trash", "absolutely terrible", "zero stars", "0 stars",
	"negative review", "one star", "poor quality", "low quality", "no effort",
	"lazy dev",
}

var PositiveWords = []string{
	"great", "amazing", "awesome", "love", "loved", "excellent", "fantastic",
	"perfect", "best", "good", "nice", "cool", "fun", "enjoy", "smooth",
	"recommend", "recommended", "beautiful", "incredible", "wonderful",
	"superb", "brilliant", "outstanding", "impressive", "works great",
	"well done", "thank", "thanks", "helpful",
}
