package payment

import "fmt"

// Bilingual prompt catalog for the payment sub-flow. Keys are looked up
// by the draft language, anything unknown falls back to English.

var catalog = map[string]map[string]string{
	"en": {
		"instructions": "Please pay the fee of %d ETB to one of the following accounts:\n\n" +
			"🏦 CBE: %s\n🏦 Abissnya: %s\n📱 Telebirr: %s\n\n" +
			"How would you like to confirm your payment?\n" +
			"1. Enter the bank transaction (FT) number\n" +
			"2. Upload a receipt screenshot or PDF\n\n" +
			"Reply with 1 or 2.",
		"ask_ft":       "Please enter your bank transaction (FT) number:",
		"ask_receipt":  "Please upload your payment receipt (photo or PDF):",
		"bad_choice":   "Please reply with 1 or 2.",
		"bad_ft":       "That does not look like a transaction number. Please enter at least 3 characters:",
		"need_receipt": "Please upload the receipt as a photo or PDF file:",
		"fetch_failed": "Could not download your file from Telegram. Please send it again:",
		"too_large":    "That file is too large. The limit is 10 MB, please send a smaller file:",
		"bad_type":     "That file type is not accepted here. Please send a JPG, PNG or PDF:",
		"submitted": "✅ Thank you! Your payment proof has been submitted and is awaiting review.\n" +
			"You will be notified once it is approved.",
	},
	"am": {
		"instructions": "እባክዎ %d ብር ክፍያ ከሚከተሉት አካውንቶች ወደ አንዱ ይክፈሉ:\n\n" +
			"🏦 ንግድ ባንክ: %s\n🏦 አቢሲንያ ባንክ: %s\n📱 ቴሌብር: %s\n\n" +
			"ክፍያዎን እንዴት ማረጋገጥ ይፈልጋሉ?\n" +
			"1. የባንክ ግብይት (FT) ቁጥር ማስገባት\n" +
			"2. ደረሰኝ ፎቶ ወይም PDF መላክ\n\n" +
			"1 ወይም 2 ብለው ይመልሱ።",
		"ask_ft":       "እባክዎ የባንክ ግብይት (FT) ቁጥርዎን ያስገቡ:",
		"ask_receipt":  "እባክዎ የክፍያ ደረሰኝዎን (ፎቶ ወይም PDF) ይላኩ:",
		"bad_choice":   "እባክዎ 1 ወይም 2 ብለው ይመልሱ።",
		"bad_ft":       "ይህ የግብይት ቁጥር አይመስልም። እባክዎ ቢያንስ 3 ፊደላት ያስገቡ:",
		"need_receipt": "እባክዎ ደረሰኙን እንደ ፎቶ ወይም PDF ፋይል ይላኩ:",
		"fetch_failed": "ፋይልዎን ከቴሌግራም ማውረድ አልተቻለም። እባክዎ እንደገና ይላኩት:",
		"too_large":    "ፋይሉ በጣም ትልቅ ነው። ገደቡ 10 MB ነው፣ እባክዎ አነስተኛ ፋይል ይላኩ:",
		"bad_type":     "ይህ የፋይል አይነት ተቀባይነት የለውም። እባክዎ JPG፣ PNG ወይም PDF ይላኩ:",
		"submitted": "✅ እናመሰግናለን! የክፍያ ማስረጃዎ ቀርቧል እና በግምገማ ላይ ነው።\n" +
			"ሲጸድቅ ማሳወቂያ ይደርስዎታል።",
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

func instructions(lang string, fee int, cbe, abissnya, telebirr string) string {
	return fmt.Sprintf(text(lang, "instructions"), fee, cbe, abissnya, telebirr)
}
