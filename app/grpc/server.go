package grpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
	"github.com/vibast-solutions/ms-go-internship/app/repository"
	"github.com/vibast-solutions/ms-go-internship/app/service"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type ReportingGRPCServer struct {
	reporting service.ReportingService
}

func NewReportingServer(reporting service.ReportingService) *ReportingGRPCServer {
	return &ReportingGRPCServer{reporting: reporting}
}

func (s *ReportingGRPCServer) Overview(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	tables, err := s.reporting.Overview(ctx)
	if err != nil {
		return nil, toStatus(err, "Overview")
	}

	list := make([]any, 0, len(tables))
	for _, t := range tables {
		columns := make([]any, 0, len(t.Columns))
		for _, c := range t.Columns {
			columns = append(columns, map[string]any{
				"column_name": c.Column,
				"data_type":   c.DataType,
				"is_nullable": c.Nullable,
				"column_key":  c.Key,
			})
		}
		list = append(list, map[string]any{
			"table":   t.Table,
			"rows":    t.Rows,
			"columns": columns,
		})
	}

	return newStruct(map[string]any{"tables": list})
}

func (s *ReportingGRPCServer) TableSample(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	table := strings.TrimSpace(fields["table"].GetStringValue())
	if table == "" {
		return nil, status.Error(codes.InvalidArgument, "table is required")
	}
	limit := repository.DefaultSampleLimit
	if v, ok := fields["limit"]; ok {
		limit = int(v.GetNumberValue())
	}

	rs, err := s.reporting.Sample(ctx, table, limit)
	if err != nil {
		return nil, toStatus(err, "TableSample")
	}
	return resultSetStruct(rs)
}

func (s *ReportingGRPCServer) RunQuery(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	query := in.GetFields()["query"].GetStringValue()

	rs, err := s.reporting.Query(ctx, query)
	if err != nil {
		return nil, toStatus(err, "RunQuery")
	}
	return resultSetStruct(rs)
}

func resultSetStruct(rs *entity.ResultSet) (*structpb.Struct, error) {
	columns := []any{}
	rows := []any{}
	if rs != nil {
		for _, c := range rs.Columns {
			columns = append(columns, c)
		}
		for _, row := range rs.Rows {
			converted := make(map[string]any, len(row))
			for k, v := range row {
				converted[k] = structValue(v)
			}
			rows = append(rows, converted)
		}
	}
	return newStruct(map[string]any{"columns": columns, "rows": rows})
}

// structValue maps driver values onto the types structpb accepts.
func structValue(v any) any {
	switch val := v.(type) {
	case nil, bool, string, int64, int32, int, uint64, uint32, float64, float32:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode reporting response (grpc)")
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}

func toStatus(err error, method string) error {
	entry := logrus.WithError(err).WithField("method", method)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		entry.Debug("Reporting request rejected (grpc)")
		return status.Error(codes.InvalidArgument, err.Error())
	case apperr.KindAuthentication:
		return status.Error(codes.Unauthenticated, err.Error())
	case apperr.KindAuthorization:
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		entry.Error("Reporting request failed (grpc)")
		return status.Error(codes.Internal, err.Error())
	}
}
