package training

var catalog = map[string]map[string]string{
	"en": {
		"ask_lang":     "Welcome to Gojo Casting training! 🎓\n\nPlease choose your language / ቋንቋ ይምረጡ:\n1. English\n2. አማርኛ",
		"bad_lang":     "Please reply with 1 for English or 2 for አማርኛ.",
		"ask_mode":     "How would you like to attend?\n1. Online\n2. In person\n\nReply with 1 or 2.",
		"bad_mode":     "Please reply with 1 for online or 2 for in person.",
		"ask_courses":  "Which courses would you like to take?\n%s\n\nReply with the numbers separated by commas (e.g. 1, 3).",
		"bad_courses":  "Please pick from the list by number, separated by commas. Every number must match an item on the list.",
		"created":      "🎓 Your enrollment has been created! One last step: the training fee.",
		"already":      "You are already enrolled in training. Use /help to see what else you can do.",
		"not_eligible": "Training is open to registered talents with an approved registration payment. Please finish /register first.",
		"failed":       "Sorry, something went wrong while saving your enrollment. Please try again later with /training.",
		"pay_no_record": "You have no training enrollment yet. Start one with /training.",
		"pay_already":   "Your training payment is already approved, nothing to pay.",
	},
	"am": {
		"ask_mode":     "እንዴት መከታተል ይፈልጋሉ?\n1. በመስመር ላይ\n2. በአካል\n\n1 ወይም 2 ብለው ይመልሱ።",
		"bad_mode":     "እባክዎ ለመስመር ላይ 1፣ ለበአካል 2 ብለው ይመልሱ።",
		"ask_courses":  "የትኞቹን ኮርሶች መውሰድ ይፈልጋሉ?\n%s\n\nቁጥሮቹን በነጠላ ሰረዝ ለይተው ይመልሱ (ለምሳሌ 1, 3)።",
		"bad_courses":  "እባክዎ ከዝርዝሩ በቁጥር ይምረጡ። እያንዳንዱ ቁጥር በዝርዝሩ ላይ መገኘት አለበት።",
		"created":      "🎓 ምዝገባዎ ተፈጥሯል! የመጨረሻው ደረጃ የስልጠና ክፍያ ነው።",
		"already":      "ከዚህ በፊት ለስልጠና ተመዝግበዋል። ሌላ ምን ማድረግ እንደሚችሉ ለማየት /help ይጠቀሙ።",
		"not_eligible": "ስልጠና የሚከፈተው የምዝገባ ክፍያቸው ለጸደቀ ተመዝጋቢዎች ብቻ ነው። እባክዎ መጀመሪያ /register ይጨርሱ።",
		"failed":       "ይቅርታ፣ ምዝገባዎን በማስቀመጥ ላይ ችግር ተፈጥሯል። እባክዎ ቆይተው በ /training እንደገና ይሞክሩ።",
		"pay_no_record": "እስካሁን የስልጠና ምዝገባ የለዎትም። በ /training ይጀምሩ።",
		"pay_already":   "የስልጠና ክፍያዎ አስቀድሞ ጸድቋል፣ የሚከፈል ነገር የለም።",
	},
}

func text(lang, key string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return catalog["en"][key]
}
