package capture

import (
	"time"

	"gorm.io/gorm"
	"m7s.live/capture/pkg"
	"m7s.live/capture/pkg/db"
)

// FrameRecord is the journal row kept for every stored frame. Only
// metadata is kept; frame bytes never leave the slot.
type FrameRecord struct {
	ID        uint   `gorm:"primarykey"`
	Device    string `gorm:"index:idx_device_seq"`
	Seq       uint32 `gorm:"index:idx_device_seq"`
	Sec       int64
	Usec      int64
	Flags     uint32
	Size      int
	CreatedAt time.Time
}

func (r FrameRecord) Timestamp() pkg.Timestamp {
	return pkg.NewTimestamp(r.Sec, r.Usec)
}

type Journal struct {
	db     *gorm.DB
	device string
}

func OpenJournal(conf JournalConfig, device string) (j *Journal, err error) {
	gdb, err := db.Open(conf.Driver, conf.DSN)
	if err != nil {
		return
	}
	if err = gdb.AutoMigrate(&FrameRecord{}); err != nil {
		return
	}
	return &Journal{db: gdb, device: device}, nil
}

// Record stores the metadata of b. It works with any Buffer backing.
func (j *Journal) Record(b pkg.Buffer) error {
	ts := b.Timestamp()
	return j.db.Create(&FrameRecord{
		Device: j.device,
		Seq:    b.Seq(),
		Sec:    ts.Sec,
		Usec:   ts.Usec,
		Flags:  uint32(b.Flags()),
		Size:   b.Len(),
	}).Error
}

// Since returns the records with a sequence number of at least seq, in
// the order they were stored.
func (j *Journal) Since(seq uint32) (records []FrameRecord, err error) {
	err = j.db.Where("device = ? AND seq >= ?", j.device, seq).Order("id").Find(&records).Error
	return
}

func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
