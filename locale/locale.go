// Package locale owns the label table the report and chat layers render from.
// Keys are stable identifiers the core emits; the core itself never embeds a
// display string in scoring logic.
package locale

import "app/models"

// labels maps label_key -> language -> string.
var labels = map[string]map[models.Language]string{
	"time_mode.past_analysis": {
		models.LangEnglish: "Past analysis",
		models.LangTamil:   "கடந்த கால ஆய்வு",
		models.LangKannada: "ಹಿಂದಿನ ವಿಶ್ಲೇಷಣೆ",
	},
	"time_mode.future_prediction": {
		models.LangEnglish: "Future prediction",
		models.LangTamil:   "எதிர்கால கணிப்பு",
		models.LangKannada: "ಭವಿಷ್ಯ ಭವಿಷ್ಯವಾಣಿ",
	},
	"time_mode.month_wise": {
		models.LangEnglish: "Month-wise outlook",
		models.LangTamil:   "மாத வாரியான கணிப்பு",
		models.LangKannada: "ಮಾಸಿಕ ಮುನ್ನೋಟ",
	},
	"time_mode.year_overlay": {
		models.LangEnglish: "Yearly overlay",
		models.LangTamil:   "வருடாந்திர கணிப்பு",
		models.LangKannada: "ವಾರ್ಷಿಕ ಮುನ್ನೋಟ",
	},
	"time_mode.present": {
		models.LangEnglish: "Present",
		models.LangTamil:   "நிகழ்காலம்",
		models.LangKannada: "ಪ್ರಸ್ತುತ",
	},
	"module.dasha_bhukti": {
		models.LangEnglish: "Dasha-Bhukti strength",
		models.LangTamil:   "தசா புத்தி பலம்",
		models.LangKannada: "ದಶಾ ಭುಕ್ತಿ ಬಲ",
	},
	"module.house_power": {
		models.LangEnglish: "House power",
		models.LangTamil:   "பாவ பலம்",
		models.LangKannada: "ಭಾವ ಬಲ",
	},
	"module.planet_power": {
		models.LangEnglish: "Planet power",
		models.LangTamil:   "கிரக பலம்",
		models.LangKannada: "ಗ್ರಹ ಬಲ",
	},
	"module.transit": {
		models.LangEnglish: "Transit influence",
		models.LangTamil:   "கோச்சார பலன்",
		models.LangKannada: "ಗೋಚಾರ ಪ್ರಭಾವ",
	},
	"module.yoga_dosha": {
		models.LangEnglish: "Yogas and doshas",
		models.LangTamil:   "யோகம் மற்றும் தோஷம்",
		models.LangKannada: "ಯೋಗ ಮತ್ತು ದೋಷ",
	},
	"module.navamsa": {
		models.LangEnglish: "Navamsa confirmation",
		models.LangTamil:   "நவாம்ச உறுதிப்பாடு",
		models.LangKannada: "ನವಾಂಶ ದೃಢೀಕರಣ",
	},
	"life_area.general": {
		models.LangEnglish: "General",
		models.LangTamil:   "பொது",
		models.LangKannada: "ಸಾಮಾನ್ಯ",
	},
	"life_area.career": {
		models.LangEnglish: "Career",
		models.LangTamil:   "தொழில்",
		models.LangKannada: "ವೃತ್ತಿ",
	},
	"life_area.finance": {
		models.LangEnglish: "Finance",
		models.LangTamil:   "நிதி",
		models.LangKannada: "ಹಣಕಾಸು",
	},
	"life_area.health": {
		models.LangEnglish: "Health",
		models.LangTamil:   "ஆரோக்கியம்",
		models.LangKannada: "ಆರೋಗ್ಯ",
	},
	"life_area.relationships": {
		models.LangEnglish: "Relationships",
		models.LangTamil:   "உறவுகள்",
		models.LangKannada: "ಸಂಬಂಧಗಳು",
	},
	"confidence.high": {
		models.LangEnglish: "High confidence",
		models.LangTamil:   "அதிக நம்பகத்தன்மை",
		models.LangKannada: "ಹೆಚ್ಚಿನ ವಿಶ್ವಾಸ",
	},
	"confidence.medium": {
		models.LangEnglish: "Medium confidence",
		models.LangTamil:   "நடுத்தர நம்பகத்தன்மை",
		models.LangKannada: "ಮಧ್ಯಮ ವಿಶ್ವಾಸ",
	},
	"confidence.low": {
		models.LangEnglish: "Low confidence",
		models.LangTamil:   "குறைந்த நம்பகத்தன்மை",
		models.LangKannada: "ಕಡಿಮೆ ವಿಶ್ವಾಸ",
	},
}

// Label resolves a key for a language, falling back to English, then to the
// key itself so a missing entry is visible instead of silent.
func Label(key string, lang models.Language) string {
	entry, ok := labels[key]
	if !ok {
		return key
	}
	if s, ok := entry[lang]; ok {
		return s
	}
	if s, ok := entry[models.LangEnglish]; ok {
		return s
	}
	return key
}

// All returns the full label map for one language, for the report layer to
// bulk-load.
func All(lang models.Language) map[string]string {
	out := make(map[string]string, len(labels))
	for key := range labels {
		out[key] = Label(key, lang)
	}
	return out
}
