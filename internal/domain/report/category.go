package report

// Categories offered on the main keyboard, in display order.
var Categories = []string{
	"📸 Счётчики",
	"🛠 Ремонт",
	"🧳 Забытые вещи",
	"💸 Штраф",
	"📝 Другое",
}

// IsCategory reports whether text is exactly one of the category labels.
func IsCategory(text string) bool {
	for _, c := range Categories {
		if c == text {
			return true
		}
	}
	return false
}

// ContentType is the kind of message a user submitted.
type ContentType string

const (
	ContentText      ContentType = "text"
	ContentPhoto     ContentType = "photo"
	ContentVideo     ContentType = "video"
	ContentDocument  ContentType = "document"
	ContentAudio     ContentType = "audio"
	ContentVoice     ContentType = "voice"
	ContentAnimation ContentType = "animation"
	ContentVideoNote ContentType = "video_note"
	ContentSticker   ContentType = "sticker"
	ContentOther     ContentType = "other"
)
