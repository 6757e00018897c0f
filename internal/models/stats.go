package models

// FormatStats counts conversions per Discord timestamp style.
//
//	d  short date       D  long date
//	t  short time       T  long time
//	f  short date/time  F  long date/time
//	R  relative
type FormatStats struct {
	ShortDate     uint32 `json:"d"`
	LongDate      uint32 `json:"D"`
	ShortTime     uint32 `json:"t"`
	LongTime      uint32 `json:"T"`
	ShortDateTime uint32 `json:"f"`
	LongDateTime  uint32 `json:"F"`
	Relative      uint32 `json:"R"`
}
