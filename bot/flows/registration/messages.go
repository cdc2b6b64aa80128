package registration

var catalog = map[string]map[string]string{
	"en": {
		"ask_lang":       "Welcome to Gojo Casting! 🎬\n\nPlease choose your language / ቋንቋ ይምረጡ:\n1. English\n2. አማርኛ",
		"bad_lang":       "Please reply with 1 for English or 2 for አማርኛ.",
		"ask_full_name":  "Let's get you registered. What is your full name?",
		"bad_full_name":  "Please enter your full name (at least 2 characters).",
		"ask_dob":        "What is your date of birth? (YYYY-MM-DD, you must be 18 or older)",
		"bad_dob":        "That date is not valid. Please use YYYY-MM-DD and make sure you are between 18 and 100 years old.",
		"ask_gender":     "What is your gender?\n%s\n\nReply with the number.",
		"ask_phone":      "What is your phone number? (e.g. +251912345678)",
		"bad_phone":      "That phone number is not valid. Please enter 10 to 15 digits, optionally starting with +.",
		"ask_email":      "What is your email address?",
		"bad_email":      "That email address is not valid. Please try again.",
		"ask_address":    "What is your present address?",
		"bad_address":    "Please enter your present address.",
		"ask_marital":    "What is your marital status?\n%s\n\nReply with the number.",
		"ask_height":     "What is your height in meters? (e.g. 1.75)",
		"bad_height":     "Height must be a number between 1.00 and 2.50 meters.",
		"ask_weight":     "What is your weight in kilograms? (e.g. 68)",
		"bad_weight":     "Weight must be a number between 30 and 200 kilograms.",
		"ask_face":       "What is your face color? (e.g. fair, light brown, dark)",
		"bad_face":       "Please describe your face color.",
		"ask_categories": "Which talent categories do you work in?\n%s\n\nReply with the numbers separated by commas (e.g. 1, 4, 18).",
		"bad_categories": "Please pick from the list by number, separated by commas. Every number must match an item on the list.",
		"ask_pref_lang":  "Which language do you prefer to work in?",
		"bad_pref_lang":  "Please enter your preferred working language.",
		"ask_id":         "Please upload a photo or PDF of your national ID.",
		"ask_photo":      "Please upload a recent photo of yourself (JPG or PNG).",
		"need_file":      "Please send that as a file or photo attachment.",
		"fetch_failed":   "Could not download your file from Telegram. Please send it again.",
		"too_large":      "That file is too large. The limit is 10 MB, please send a smaller file.",
		"bad_type":       "That file type is not accepted here. Please check the allowed formats and try again.",
		"created":        "🎉 Your registration has been created! One last step: the registration fee.",
		"already":        "You are already registered. Use /help to see what else you can do.",
		"failed":         "Sorry, something went wrong while saving your registration. Please try again later with /register.",
		"bad_choice":     "Please reply with one of the listed numbers.",
		"pay_no_record":  "You have no registration yet. Start one with /register.",
		"pay_already":    "Your registration payment is already approved, nothing to pay.",
	},
	"am": {
		"ask_full_name":  "ምዝገባዎን እንጀምር። ሙሉ ስምዎ ማን ይባላል?",
		"bad_full_name":  "እባክዎ ሙሉ ስምዎን ያስገቡ (ቢያንስ 2 ፊደላት)።",
		"ask_dob":        "የትውልድ ቀንዎ መቼ ነው? (YYYY-MM-DD, 18 ዓመት እና ከዚያ በላይ መሆን አለብዎት)",
		"bad_dob":        "ቀኑ ትክክል አይደለም። እባክዎ YYYY-MM-DD ይጠቀሙ እና ዕድሜዎ ከ18 እስከ 100 መሆኑን ያረጋግጡ።",
		"ask_gender":     "ጾታዎ ምንድን ነው?\n%s\n\nበቁጥር ይመልሱ።",
		"ask_phone":      "ስልክ ቁጥርዎ ስንት ነው? (ለምሳሌ +251912345678)",
		"bad_phone":      "ስልክ ቁጥሩ ትክክል አይደለም። እባክዎ ከ10 እስከ 15 አሃዞች ያስገቡ።",
		"ask_email":      "የኢሜይል አድራሻዎ ምንድን ነው?",
		"bad_email":      "የኢሜይል አድራሻው ትክክል አይደለም። እባክዎ እንደገና ይሞክሩ።",
		"ask_address":    "የአሁኑ አድራሻዎ የት ነው?",
		"bad_address":    "እባክዎ የአሁኑን አድራሻዎን ያስገቡ።",
		"ask_marital":    "የጋብቻ ሁኔታዎ ምንድን ነው?\n%s\n\nበቁጥር ይመልሱ።",
		"ask_height":     "ቁመትዎ በሜትር ስንት ነው? (ለምሳሌ 1.75)",
		"bad_height":     "ቁመት ከ1.00 እስከ 2.50 ሜትር መሆን አለበት።",
		"ask_weight":     "ክብደትዎ በኪሎግራም ስንት ነው? (ለምሳሌ 68)",
		"bad_weight":     "ክብደት ከ30 እስከ 200 ኪሎግራም መሆን አለበት።",
		"ask_face":       "የፊት ቀለምዎ ምንድን ነው?",
		"bad_face":       "እባክዎ የፊት ቀለምዎን ይግለጹ።",
		"ask_categories": "በየትኞቹ የተሰጥኦ ዘርፎች ይሰራሉ?\n%s\n\nቁጥሮቹን በነጠላ ሰረዝ ለይተው ይመልሱ (ለምሳሌ 1, 4, 18)።",
		"bad_categories": "እባክዎ ከዝርዝሩ በቁጥር ይምረጡ። እያንዳንዱ ቁጥር በዝርዝሩ ላይ መገኘት አለበት።",
		"ask_pref_lang":  "በየትኛው ቋንቋ መስራት ይመርጣሉ?",
		"bad_pref_lang":  "እባክዎ የሚመርጡትን የስራ ቋንቋ ያስገቡ።",
		"ask_id":         "እባክዎ የመታወቂያዎን ፎቶ ወይም PDF ይላኩ።",
		"ask_photo":      "እባክዎ የቅርብ ጊዜ ፎቶዎን ይላኩ (JPG ወይም PNG)።",
		"need_file":      "እባክዎ እንደ ፋይል ወይም ፎቶ አባሪ ይላኩት።",
		"fetch_failed":   "ፋይልዎን ከቴሌግራም ማውረድ አልተቻለም። እባክዎ እንደገና ይላኩት።",
		"too_large":      "ፋይሉ በጣም ትልቅ ነው። ገደቡ 10 MB ነው፣ እባክዎ አነስተኛ ፋይል ይላኩ።",
		"bad_type":       "ይህ የፋይል አይነት ተቀባይነት የለውም። የተፈቀዱትን ቅርጸቶች አረጋግጠው እንደገና ይሞክሩ።",
		"created":        "🎉 ምዝገባዎ ተፈጥሯል! የመጨረሻው ደረጃ የምዝገባ ክፍያ ነው።",
		"already":        "ከዚህ በፊት ተመዝግበዋል። ሌላ ምን ማድረግ እንደሚችሉ ለማየት /help ይጠቀሙ።",
		"failed":         "ይቅርታ፣ ምዝገባዎን በማስቀመጥ ላይ ችግር ተፈጥሯል። እባክዎ ቆይተው በ /register እንደገና ይሞክሩ።",
		"bad_choice":     "እባክዎ ከተዘረዘሩት ቁጥሮች አንዱን ይምረጡ።",
		"pay_no_record":  "እስካሁን ምዝገባ የለዎትም። በ /register ይጀምሩ።",
		"pay_already":    "የምዝገባ ክፍያዎ አስቀድሞ ጸድቋል፣ የሚከፈል ነገር የለም።",
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
