package review

var catalog = map[string]map[string]string{
	"en": {
		"registration_approved": "✅ Your registration payment has been approved. Welcome to Gojo Casting!",
		"registration_rejected": "❌ Your registration payment was rejected. Please check your payment and submit the proof again with /register_payment.",
		"training_approved":     "✅ Your training payment has been approved. See you in class!",
		"training_rejected":     "❌ Your training payment was rejected. Please check your payment and submit the proof again with /training_payment.",
	},
	"am": {
		"registration_approved": "✅ የምዝገባ ክፍያዎ ጸድቋል። እንኳን ወደ ጎጆ ካስቲንግ በደህና መጡ!",
		"registration_rejected": "❌ የምዝገባ ክፍያዎ ውድቅ ተደርጓል። እባክዎ ክፍያዎን አረጋግጠው ማስረጃውን በ /register_payment እንደገና ያቅርቡ።",
		"training_approved":     "✅ የስልጠና ክፍያዎ ጸድቋል። በክፍል እንገናኝ!",
		"training_rejected":     "❌ የስልጠና ክፍያዎ ውድቅ ተደርጓል። እባክዎ ክፍያዎን አረጋግጠው ማስረጃውን በ /training_payment እንደገና ያቅርቡ።",
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
