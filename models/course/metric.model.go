package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlatformMetric is a daily revenue snapshot across the whole platform,
// upserted by the nightly scheduler. Breakdown holds per-course gross
// revenue as a JSON object keyed by course ID.
type PlatformMetric struct {
	gorm.Model
	Day          time.Time      `json:"day" gorm:"uniqueIndex;not null"`
	Enrollments  int64          `json:"enrollments"`
	GrossRevenue float64        `json:"gross_revenue"`
	NetRevenue   float64        `json:"net_revenue"`
	PlatformFee  float64        `json:"platform_fee"`
	Breakdown    datatypes.JSON `json:"breakdown"`
}
