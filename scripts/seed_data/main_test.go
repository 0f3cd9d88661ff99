package main

import (
	"io"
	"testing"
	"time"

	"github.com/bifpcl/internal/db"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Options{SQLitePath: "file:" + t.Name() + "?mode=memory&cache=shared", LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func quietLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := setupSeedTestDB(t)

	fx, err := loadFixtures(defaultFixtures)
	if err != nil {
		t.Fatalf("failed to parse fixtures: %v", err)
	}
	today := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if err := seed(gdb, fx, today, quietLog()); err != nil {
			t.Fatalf("seed run %d failed: %v", i+1, err)
		}
	}

	counts := map[string]struct {
		model interface{}
		want  int
	}{
		"projects":  {&db.Project{}, len(fx.Projects)},
		"directors": {&db.Director{}, len(fx.Directors)},
		"news":      {&db.NewsArticle{}, len(fx.News)},
		"careers":   {&db.Career{}, len(fx.Careers)},
		"tenders":   {&db.Tender{}, len(fx.Tenders)},
		"csr":       {&db.CSRInitiative{}, len(fx.CSR)},
		"notices":   {&db.Notice{}, len(fx.Notices)},
	}
	for name, tc := range counts {
		var got int64
		if err := gdb.Model(tc.model).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if int(got) != tc.want {
			t.Fatalf("expected %d %s, got %d", tc.want, name, got)
		}
	}

	var info db.CompanyInfo
	if err := gdb.First(&info, db.CompanyInfoRowID).Error; err != nil {
		t.Fatalf("load company info: %v", err)
	}
	if info.PartnershipRatio != "50:50 (BPDB & NTPC)" {
		t.Fatalf("unexpected partnership ratio %q", info.PartnershipRatio)
	}
}

func TestSeedDerivesNoticeSlugsAndDates(t *testing.T) {
	gdb := setupSeedTestDB(t)

	fx := fixtures{
		Company: companyFixture{Name: "BIFPCL", Tagline: "Energy", Description: "JV"},
		Notices: []noticeFixture{{Title: "Recruitment Drive 2026", Category: "recruitment", PublishedDays: -2}},
		Tenders: []tenderFixture{{
			TenderID: "T-1", Title: "Spare parts", Category: "mechanical", Description: "Parts",
			Status: "open", PublicationDays: -5, DeadlineDays: 25,
		}},
	}
	today := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if err := seed(gdb, fx, today, quietLog()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var notice db.Notice
	if err := gdb.First(&notice).Error; err != nil {
		t.Fatalf("load notice: %v", err)
	}
	if notice.Slug != "recruitment-drive-2026" {
		t.Fatalf("unexpected notice slug %q", notice.Slug)
	}
	if !notice.IsActive {
		t.Fatalf("expected seeded notice to be active")
	}
	if got := notice.PublishedDate.Format("2006-01-02"); got != "2026-01-13" {
		t.Fatalf("unexpected published date %s", got)
	}

	var tender db.Tender
	if err := gdb.First(&tender).Error; err != nil {
		t.Fatalf("load tender: %v", err)
	}
	if got := tender.Deadline.Format("2006-01-02"); got != "2026-02-09" {
		t.Fatalf("unexpected deadline %s", got)
	}
}
