package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bifpcl/internal/db"
)

func createTestCareer(t *testing.T, svc *CareerService) *db.Career {
	t.Helper()
	career, err := svc.Create(CareerInput{
		Title:        strPtr("Shift Engineer"),
		Department:   strPtr("Operations"),
		Location:     strPtr("Rampal"),
		Description:  strPtr("Run the units"),
		Requirements: strPtr("B.Sc."),
		Deadline:     strPtr("2026-12-31"),
	})
	if err != nil {
		t.Fatalf("create career: %v", err)
	}
	return career
}

func applicationInput(careerID string) JobApplicationInput {
	return JobApplicationInput{
		CareerID:    strPtr(careerID),
		FullName:    strPtr("Jane Doe"),
		Email:       strPtr("jane@example.com"),
		Phone:       strPtr("+8801700000000"),
		Resume:      strPtr("/media/resumes/cv.pdf"),
		CoverLetter: strPtr("Hello"),
	}
}

func TestJobApplicationCreateForcesPending(t *testing.T) {
	gdb := setupServiceTestDB(t)
	career := createTestCareer(t, NewCareerService(gdb))
	svc := NewJobApplicationService(gdb)

	input := applicationInput(fmt.Sprint(career.ID))
	input.Status = strPtr(ApplicationStatusRejected)
	item, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Status != ApplicationStatusPending {
		t.Fatalf("expected pending status, got %q", item.Status)
	}
	if item.Career.Title != "Shift Engineer" {
		t.Fatalf("expected career preloaded, got %+v", item.Career)
	}

	updated, err := svc.Update(fmt.Sprint(item.ID), JobApplicationInput{Status: strPtr(ApplicationStatusShortlisted)}, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != ApplicationStatusShortlisted || updated.FullName != "Jane Doe" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	filtered, err := svc.List(JobApplicationFilter{Status: ApplicationStatusShortlisted})
	if err != nil || filtered.Count != 1 {
		t.Fatalf("expected one shortlisted application, got %d %v", filtered.Count, err)
	}
}

func TestJobApplicationRejectsUnknownCareer(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewJobApplicationService(gdb)

	input := applicationInput("404")
	input.Email = strPtr("not-an-email")
	_, err := svc.Create(input)
	var verr ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if got := verr["career"]; len(got) != 1 || got[0] != `Invalid pk "404" - object does not exist.` {
		t.Fatalf("unexpected career error %v", got)
	}
	if len(verr["email"]) == 0 {
		t.Fatalf("expected email error, got %v", verr)
	}

	_, err = svc.Create(JobApplicationInput{})
	if !errors.As(err, &verr) || len(verr["resume"]) == 0 || len(verr["career"]) == 0 {
		t.Fatalf("expected required field errors, got %v", err)
	}
}

func TestCareerDeleteRemovesApplications(t *testing.T) {
	gdb := setupServiceTestDB(t)
	careers := NewCareerService(gdb)
	career := createTestCareer(t, careers)
	svc := NewJobApplicationService(gdb)

	if _, err := svc.Create(applicationInput(fmt.Sprint(career.ID))); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if err := careers.Delete(fmt.Sprint(career.ID)); err != nil {
		t.Fatalf("delete career: %v", err)
	}

	var count int64
	if err := gdb.Model(&db.JobApplication{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected applications removed, got %d", count)
	}
}

func TestContactInquiryDefaults(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactInquiryService(gdb)

	item, err := svc.Create(ContactInquiryInput{
		FullName: strPtr("Rahim"),
		Email:    strPtr("rahim@example.com"),
		Category: strPtr("media"),
		Message:  strPtr("Interview request"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.IsResolved {
		t.Fatalf("new inquiry should be unresolved")
	}

	if _, err := svc.Update(fmt.Sprint(item.ID), ContactInquiryInput{IsResolved: boolPtr(true)}, true); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	open, err := svc.List(ContactInquiryFilter{IsResolved: boolPtr(false)})
	if err != nil || open.Count != 0 {
		t.Fatalf("expected no open inquiries, got %d %v", open.Count, err)
	}

	_, err = svc.Create(ContactInquiryInput{FullName: strPtr("X"), Email: strPtr("x@example.com"), Category: strPtr("sales"), Message: strPtr("hi")})
	var verr ValidationErrors
	if !errors.As(err, &verr) || len(verr["category"]) == 0 {
		t.Fatalf("expected category error, got %v", err)
	}
}
