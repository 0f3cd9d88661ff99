package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bifpcl/internal/config"
	"github.com/bifpcl/internal/db"
	"github.com/bifpcl/internal/service"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type fixtures struct {
	Company   companyFixture    `yaml:"company"`
	Projects  []projectFixture  `yaml:"projects"`
	Directors []directorFixture `yaml:"directors"`
	News      []newsFixture     `yaml:"news"`
	Careers   []careerFixture   `yaml:"careers"`
	Tenders   []tenderFixture   `yaml:"tenders"`
	CSR       []csrFixture      `yaml:"csr"`
	Notices   []noticeFixture   `yaml:"notices"`
}

type companyFixture struct {
	Name             string `yaml:"name"`
	Tagline          string `yaml:"tagline"`
	Description      string `yaml:"description"`
	TotalCapacityMW  int    `yaml:"total_capacity_mw"`
	Technology       string `yaml:"technology"`
	PartnershipRatio string `yaml:"partnership_ratio"`
}

type projectFixture struct {
	Name              string  `yaml:"name"`
	Slug              string  `yaml:"slug"`
	Location          string  `yaml:"location"`
	CapacityMW        int     `yaml:"capacity_mw"`
	Technology        string  `yaml:"technology"`
	Status            string  `yaml:"status"`
	Description       string  `yaml:"description"`
	Latitude          float64 `yaml:"latitude"`
	Longitude         float64 `yaml:"longitude"`
	EfficiencyPercent float64 `yaml:"efficiency_percent"`
}

type directorFixture struct {
	Name         string `yaml:"name"`
	Title        string `yaml:"title"`
	Organization string `yaml:"organization"`
	Bio          string `yaml:"bio"`
	Order        int    `yaml:"order"`
	IsChairman   bool   `yaml:"is_chairman"`
}

type newsFixture struct {
	Title         string `yaml:"title"`
	Slug          string `yaml:"slug"`
	Category      string `yaml:"category"`
	Excerpt       string `yaml:"excerpt"`
	Content       string `yaml:"content"`
	PublishedDays int    `yaml:"published_offset_days"`
	IsFeatured    bool   `yaml:"is_featured"`
}

type careerFixture struct {
	Title          string `yaml:"title"`
	Department     string `yaml:"department"`
	Location       string `yaml:"location"`
	EmploymentType string `yaml:"employment_type"`
	Description    string `yaml:"description"`
	Requirements   string `yaml:"requirements"`
	SalaryRange    string `yaml:"salary_range"`
	DeadlineDays   int    `yaml:"deadline_offset_days"`
}

type tenderFixture struct {
	TenderID        string `yaml:"tender_id"`
	Title           string `yaml:"title"`
	Category        string `yaml:"category"`
	Description     string `yaml:"description"`
	Status          string `yaml:"status"`
	PublicationDays int    `yaml:"publication_offset_days"`
	DeadlineDays    int    `yaml:"deadline_offset_days"`
	ValueRange      string `yaml:"value_range"`
}

type csrFixture struct {
	Title        string `yaml:"title"`
	Category     string `yaml:"category"`
	Description  string `yaml:"description"`
	ImpactMetric string `yaml:"impact_metric"`
	Order        int    `yaml:"order"`
}

type noticeFixture struct {
	Title         string `yaml:"title"`
	Category      string `yaml:"category"`
	PublishedDays int    `yaml:"published_offset_days"`
	Order         int    `yaml:"order"`
	IsFeatured    bool   `yaml:"is_featured"`
}

// 测试数据生成器
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := config.InitLogger(cfg.LogLevel)

	if err := db.Init(db.Options{SQLitePath: cfg.DatabasePath, DatabaseURL: cfg.DatabaseURL}); err != nil {
		log.WithError(err).Fatal("数据库初始化失败")
	}

	data := defaultFixtures
	if len(os.Args) > 1 {
		if data, err = os.ReadFile(os.Args[1]); err != nil {
			log.WithError(err).Fatal("failed to read fixtures")
		}
	}
	fx, err := loadFixtures(data)
	if err != nil {
		log.WithError(err).Fatal("failed to parse fixtures")
	}

	if err := seed(db.DB, fx, time.Now(), log.WithField("component", "seed")); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	log.Info("database seeded")
}

func loadFixtures(data []byte) (fixtures, error) {
	var fx fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fx, err
	}
	return fx, nil
}

// seed creates or refreshes every fixture through the services, so the
// same validation and slug rules apply as for API writes. Running it twice
// leaves one row per fixture.
func seed(gdb *gorm.DB, fx fixtures, today time.Time, log *logrus.Entry) error {
	day := func(offset int) *string {
		return ptr(service.FormatDate(today.AddDate(0, 0, offset)))
	}

	company := fx.Company
	if _, err := service.NewCompanyService(gdb).Update(service.CompanyInput{
		Name:             ptr(company.Name),
		Tagline:          ptr(company.Tagline),
		Description:      ptr(company.Description),
		TotalCapacityMW:  ptr(company.TotalCapacityMW),
		Technology:       ptr(company.Technology),
		PartnershipRatio: ptr(company.PartnershipRatio),
	}, false); err != nil {
		return fmt.Errorf("company info: %w", err)
	}
	log.Info("company info ready")

	projects := service.NewProjectService(gdb)
	for _, p := range fx.Projects {
		input := service.ProjectInput{
			Name:              ptr(p.Name),
			Slug:              ptr(p.Slug),
			Location:          ptr(p.Location),
			CapacityMW:        ptr(p.CapacityMW),
			Technology:        ptr(p.Technology),
			Status:            ptr(p.Status),
			Description:       ptr(p.Description),
			Latitude:          ptr(p.Latitude),
			Longitude:         ptr(p.Longitude),
			EfficiencyPercent: ptr(p.EfficiencyPercent),
		}
		if err := upsert(gdb, &db.Project{}, "slug = ?", []interface{}{p.Slug},
			func() error { _, err := projects.Create(input); return err },
			func(id string) error { _, err := projects.Update(id, input, false); return err },
		); err != nil {
			return fmt.Errorf("project %q: %w", p.Name, err)
		}
	}
	log.WithField("count", len(fx.Projects)).Info("projects ready")

	directors := service.NewDirectorService(gdb)
	for _, d := range fx.Directors {
		input := service.DirectorInput{
			Name:         ptr(d.Name),
			Title:        ptr(d.Title),
			Organization: ptr(d.Organization),
			Bio:          ptr(d.Bio),
			Order:        ptr(d.Order),
			IsChairman:   ptr(d.IsChairman),
		}
		if err := upsert(gdb, &db.Director{}, "name = ?", []interface{}{d.Name},
			func() error { _, err := directors.Create(input); return err },
			func(id string) error { _, err := directors.Update(id, input, false); return err },
		); err != nil {
			return fmt.Errorf("director %q: %w", d.Name, err)
		}
	}
	log.WithField("count", len(fx.Directors)).Info("directors ready")

	news := service.NewNewsService(gdb)
	for _, n := range fx.News {
		input := service.NewsInput{
			Title:         ptr(n.Title),
			Slug:          ptr(n.Slug),
			Category:      ptr(n.Category),
			Excerpt:       ptr(n.Excerpt),
			Content:       ptr(n.Content),
			PublishedDate: day(n.PublishedDays),
			IsFeatured:    ptr(n.IsFeatured),
		}
		if err := upsert(gdb, &db.NewsArticle{}, "slug = ?", []interface{}{n.Slug},
			func() error { _, err := news.Create(input); return err },
			func(id string) error { _, err := news.Update(id, input, false); return err },
		); err != nil {
			return fmt.Errorf("news %q: %w", n.Title, err)
		}
	}
	log.WithField("count", len(fx.News)).Info("news ready")

	careers := service.NewCareerService(gdb)
	for _, j := range fx.Careers {
		input := service.CareerInput{
			Title:          ptr(j.Title),
			Department:     ptr(j.Department),
			Location:       ptr(j.Location),
			EmploymentType: ptr(j.EmploymentType),
			Description:    ptr(j.Description),
			Requirements:   ptr(j.Requirements),
			SalaryRange:    ptr(j.SalaryRange),
			Deadline:       day(j.DeadlineDays),
			IsActive:       ptr(true),
		}
		if err := upsert(gdb, &db.Career{}, "title = ? AND department = ?", []interface{}{j.Title, j.Department},
			func() error { _, err := careers.Create(input); return err },
			func(id string) error { _, err := careers.Update(id, input, false); return err },
		); err != nil {
			return fmt.Errorf("career %q: %w", j.Title, err)
		}
	}
	log.WithField("count", len(fx.Careers)).Info("careers ready")

	tenders := service.NewTenderService(gdb)
	for _, t := range fx.Tenders {
		input := service.TenderInput{
			TenderID:        ptr(t.TenderID),
			Title:           ptr(t.Title),
			Category:        ptr(t.Category),
			Description:     ptr(t.Description),
			Status:          ptr(t.Status),
			PublicationDate: day(t.PublicationDays),
			Deadline:        day(t.DeadlineDays),
			ValueRange:      ptr(t.ValueRange),
		}
		if err := upsert(gdb, &db.Tender{}, "tender_id = ?", []interface{}{t.TenderID},
			func() error { _, err := tenders.Create(input); return err },
			func(id string) error { _, err := tenders.Update(id, input, false); return err },
		); err != nil {
			return fmt.Errorf("tender %q: %w", t.TenderID, err)
		}
	}
	log.WithField("count", len(fx.Tenders)).Info("tenders ready")

	csr := service.NewCSRService(gdb)
	for _, i := range fx.CSR {
		input := service.CSRInput{
			Title:        ptr(i.Title),
			Category:     ptr(i.Category),
			Description:  ptr(i.Description),
			ImpactMetric: ptr(i.ImpactMetric),
			Order:        ptr(i.Order),
		}
		if err := upsert(gdb, &db.CSRInitiative{}, "title = ?", []interface{}{i.Title},
			func() error { _, err := csr.Create(input); return err },
			func(id string) error { _, err := csr.Update(id, input, false); return err },
		); err != nil {
			return fmt.Errorf("csr initiative %q: %w", i.Title, err)
		}
	}
	log.WithField("count", len(fx.CSR)).Info("csr initiatives ready")

	notices := service.NewNoticeService(gdb)
	for _, n := range fx.Notices {
		input := service.NoticeInput{
			Title:         ptr(n.Title),
			Category:      ptr(n.Category),
			PublishedDate: day(n.PublishedDays),
			IsActive:      ptr(true),
			IsFeatured:    ptr(n.IsFeatured),
			Order:         ptr(n.Order),
		}
		if err := upsert(gdb, &db.Notice{}, "title = ?", []interface{}{n.Title},
			func() error { _, err := notices.Create(input); return err },
			func(id string) error { _, err := notices.Update(id, input, false); return err },
		); err != nil {
			return fmt.Errorf("notice %q: %w", n.Title, err)
		}
	}
	log.WithField("count", len(fx.Notices)).Info("notices ready")
	return nil
}

// upsert updates the first row matching where, or creates one.
func upsert(gdb *gorm.DB, model interface{}, where string, args []interface{}, create func() error, update func(id string) error) error {
	var id uint
	err := gdb.Model(model).Select("id").Where(where, args...).Limit(1).Scan(&id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if id == 0 {
		return create()
	}
	return update(strconv.FormatUint(uint64(id), 10))
}

func ptr[T any](v T) *T {
	return &v
}
