package service

import (
	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/policy"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type ReportService interface {
	Create(student *model.User, req dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetAll(requester *model.User, page, pageSize int) (*dto.PaginatedResponse, error)
	Approve(handler *model.User, id uint) (*dto.ReportResponse, error)
	Reject(handler *model.User, id uint) (*dto.ReportResponse, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	activityRepo repository.ActivityRepository
	authorizer   policy.Authorizer
}

func NewReportService(
	reportRepo repository.ReportRepository,
	activityRepo repository.ActivityRepository,
	authorizer policy.Authorizer,
) ReportService {
	return &reportService{reportRepo: reportRepo, activityRepo: activityRepo, authorizer: authorizer}
}

func (s *reportService) Create(student *model.User, req dto.CreateReportRequest) (*dto.ReportResponse, error) {
	activity, err := s.activityRepo.FindByID(req.ActivityID)
	if err != nil {
		return nil, asNotFound(err, "activity", req.ActivityID)
	}

	report := model.Report{
		StudentID:  student.ID,
		ActivityID: activity.ID,
		ImageURL:   req.ImageURL,
		Status:     model.ReportStatusPending,
	}
	if err := s.reportRepo.Create(&report); err != nil {
		return nil, err
	}
	report.Activity = *activity

	return reportToDTO(&report), nil
}

func (s *reportService) GetAll(requester *model.User, page, pageSize int) (*dto.PaginatedResponse, error) {
	// Students see only their own reports.
	var studentID *uint
	if !requester.IsAdmin() && !requester.IsStaff() {
		studentID = &requester.ID
	}

	offset := (page - 1) * pageSize
	reports, total, err := s.reportRepo.FindAll(studentID, offset, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, *reportToDTO(&reports[i]))
	}
	return &dto.PaginatedResponse{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *reportService) Approve(handler *model.User, id uint) (*dto.ReportResponse, error) {
	return s.resolve(handler, id, model.ReportStatusApproved)
}

func (s *reportService) Reject(handler *model.User, id uint) (*dto.ReportResponse, error) {
	return s.resolve(handler, id, model.ReportStatusRejected)
}

func (s *reportService) resolve(handler *model.User, id uint, status string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, "report", id)
	}
	if !s.authorizer.Allow(handler, policy.ActionHandle, report) {
		return nil, policy.ErrForbidden
	}
	if report.Status != model.ReportStatusPending {
		return nil, apperr.Conflict("report already handled")
	}

	report.Status = status
	report.HandledByID = &handler.ID
	if err := s.reportRepo.Save(report); err != nil {
		return nil, err
	}
	log.Info().Uint("report_id", id).Str("status", status).Uint("handler_id", handler.ID).Msg("Report handled")

	return reportToDTO(report), nil
}

func reportToDTO(report *model.Report) *dto.ReportResponse {
	var resp dto.ReportResponse
	copier.Copy(&resp, report)
	resp.Activity = *activityToDTO(&report.Activity)
	return &resp
}
