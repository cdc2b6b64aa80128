package job

var catalog = map[string]map[string]string{
	"en": {
		"ask_lang":     "Welcome to Gojo Casting jobs! 💼\n\nPlease choose your language / ቋንቋ ይምረጡ:\n1. English\n2. አማርኛ",
		"bad_lang":     "Please reply with 1 for English or 2 for አማርኛ.",
		"ask_cover":    "Tell us about yourself and why you are applying (your cover letter):",
		"bad_cover":    "Please write a short cover letter.",
		"ask_age":      "How old are you? (18 to 100)",
		"bad_age":      "Age must be a whole number between 18 and 100.",
		"ask_phone":    "What is your contact phone number? (e.g. +251912345678)",
		"bad_phone":    "That phone number is not valid. Please enter 10 to 15 digits, optionally starting with +.",
		"ask_email":    "What is your contact email address?",
		"bad_email":    "That email address is not valid. Please try again.",
		"ask_username": "What is your Telegram username? (e.g. @yourname)",
		"bad_username": "That does not look like a Telegram username. Use 5 to 32 letters, digits or underscores.",
		"ask_edu":      "Please upload your education document (PDF, DOC or DOCX).",
		"ask_exp":      "Please upload your work experience document (PDF, DOC or DOCX).",
		"need_file":    "Please send that as a file attachment.",
		"fetch_failed": "Could not download your file from Telegram. Please send it again.",
		"too_large":    "That file is too large. The limit is 10 MB, please send a smaller file.",
		"bad_type":     "That file type is not accepted here. Please send a PDF, DOC or DOCX.",
		"ask_social":   "Share links to your social media profiles, separated by commas, or reply \"skip\":",
		"bad_social":   "One of those links does not look like a URL. Separate links with commas, or reply \"skip\".",
		"created":      "💼 Your job application has been submitted. We will get back to you!",
		"not_eligible": "Job applications are open to registered talents with an approved registration payment. Please finish /register first.",
		"failed":       "Sorry, something went wrong while saving your application. Please try again later with /job.",
	},
	"am": {
		"ask_cover":    "ስለራስዎ እና ለምን እንደሚያመለክቱ ይንገሩን (የሽፋን ደብዳቤዎ):",
		"bad_cover":    "እባክዎ አጭር የሽፋን ደብዳቤ ይጻፉ።",
		"ask_age":      "ዕድሜዎ ስንት ነው? (ከ18 እስከ 100)",
		"bad_age":      "ዕድሜ ከ18 እስከ 100 ያለ ሙሉ ቁጥር መሆን አለበት።",
		"ask_phone":    "የመገኛ ስልክ ቁጥርዎ ስንት ነው? (ለምሳሌ +251912345678)",
		"bad_phone":    "ስልክ ቁጥሩ ትክክል አይደለም። እባክዎ ከ10 እስከ 15 አሃዞች ያስገቡ።",
		"ask_email":    "የመገኛ ኢሜይል አድራሻዎ ምንድን ነው?",
		"bad_email":    "የኢሜይል አድራሻው ትክክል አይደለም። እባክዎ እንደገና ይሞክሩ።",
		"ask_username": "የቴሌግራም የተጠቃሚ ስምዎ ምንድን ነው? (ለምሳሌ @yourname)",
		"bad_username": "ይህ የቴሌግራም የተጠቃሚ ስም አይመስልም። ከ5 እስከ 32 ፊደላት፣ አሃዞች ወይም _ ይጠቀሙ።",
		"ask_edu":      "እባክዎ የትምህርት ሰነድዎን ይላኩ (PDF, DOC ወይም DOCX)።",
		"ask_exp":      "እባክዎ የስራ ልምድ ሰነድዎን ይላኩ (PDF, DOC ወይም DOCX)።",
		"need_file":    "እባክዎ እንደ ፋይል አባሪ ይላኩት።",
		"fetch_failed": "ፋይልዎን ከቴሌግራም ማውረድ አልተቻለም። እባክዎ እንደገና ይላኩት።",
		"too_large":    "ፋይሉ በጣም ትልቅ ነው። ገደቡ 10 MB ነው፣ እባክዎ አነስተኛ ፋይል ይላኩ።",
		"bad_type":     "ይህ የፋይል አይነት ተቀባይነት የለውም። እባክዎ PDF, DOC ወይም DOCX ይላኩ።",
		"ask_social":   "የማህበራዊ ሚዲያ ገጾችዎን አገናኞች በነጠላ ሰረዝ ለይተው ያጋሩ፣ ወይም \"skip\" ብለው ይመልሱ:",
		"bad_social":   "ከአገናኞቹ አንዱ URL አይመስልም። አገናኞችን በነጠላ ሰረዝ ይለዩ፣ ወይም \"skip\" ብለው ይመልሱ።",
		"created":      "💼 የስራ ማመልከቻዎ ቀርቧል። እንመለስልዎታለን!",
		"not_eligible": "የስራ ማመልከቻ የሚከፈተው የምዝገባ ክፍያቸው ለጸደቀ ተመዝጋቢዎች ብቻ ነው። እባክዎ መጀመሪያ /register ይጨርሱ።",
		"failed":       "ይቅርታ፣ ማመልከቻዎን በማስቀመጥ ላይ ችግር ተፈጥሯል። እባክዎ ቆይተው በ /job እንደገና ይሞክሩ።",
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
