package utils

import "prep-meter/internal/models"

func SubjectEmoji(subject models.Subject) string {
	switch subject {
	case models.Physics:
		return "⚛️"
	case models.Chemistry:
		return "🧪"
	case models.Math:
		return "📐"
	default:
		return "📌"
	}
}

func MoodEmoji(mood int) string {
	switch {
	case mood <= 0:
		return "❔"
	case mood == 1:
		return "😞"
	case mood == 2:
		return "😕"
	case mood == 3:
		return "😐"
	case mood == 4:
		return "🙂"
	default:
		return "😄"
	}
}
