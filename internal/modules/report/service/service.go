package report

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"barangaylink-backend/internal/entity"
	requestDto "barangaylink-backend/internal/modules/request/dto"
	request "barangaylink-backend/internal/modules/request/service"
)

const dateLayout = "2006-01-02 15:04:05"

type ReportService interface {
	WriteRequestsCSV(ctx context.Context, filter requestDto.ListRequestsFilter, w io.Writer) error
}

type reportService struct {
	requests request.RequestService
}

func NewReportService(requests request.RequestService) ReportService {
	return &reportService{requests: requests}
}

// WriteRequestsCSV streams the requests report. Dangling references render
// as empty cells, mirroring how the read API renders them as null.
func (s *reportService) WriteRequestsCSV(ctx context.Context, filter requestDto.ListRequestsFilter, w io.Writer) error {
	items, err := s.requests.ListRequests(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Resident", "Services", "Status", "Date Requested"}); err != nil {
		return err
	}

	for _, item := range items {
		if err := cw.Write([]string{
			residentCell(item),
			servicesCell(item),
			item.Status,
			item.DateRequested.Format(dateLayout),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func residentCell(item *entity.Request) string {
	if item.Resident == nil {
		return ""
	}
	return item.Resident.Name
}

func servicesCell(item *entity.Request) string {
	if len(item.Services) > 0 {
		names := make([]string, 0, len(item.Services))
		for _, svc := range item.Services {
			names = append(names, svc.ServiceType)
		}
		return strings.Join(names, "; ")
	}
	if item.Service != nil {
		return item.Service.ServiceType
	}
	return ""
}
