package course

import "gorm.io/gorm"

// Content types
const (
	ContentText    = "text"
	ContentVideo   = "video"
	ContentAudio   = "audio"
	ContentPicture = "picture"
)

// Content is a single piece of lesson media. URL is required for every
// type except text; Text carries the body or caption.
type Content struct {
	gorm.Model
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	Type      string `json:"type" gorm:"default:'text'"` // text, video, audio, picture
	URL       string `json:"url"`
	Text      string `json:"text" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}
