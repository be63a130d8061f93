package grpc_test

import (
	"context"
	"net"
	"testing"

	internshipgrpc "github.com/vibast-solutions/ms-go-internship/app/grpc"
	"github.com/vibast-solutions/ms-go-internship/app/repository"
	"github.com/vibast-solutions/ms-go-internship/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	testAPIKey      = "reporting-key"
	listTablesQuery = `(?s)SELECT table_name, table_rows FROM information_schema.tables WHERE table_schema = \?`
)

func startServer(t *testing.T) (*internshipgrpc.ReportingClient, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	reporting := service.NewReportingService(repository.NewGateway(db, "internship_db"))

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(grpc.UnaryInterceptor(internshipgrpc.APIKeyUnaryInterceptor(testAPIKey)))
	internshipgrpc.RegisterReportingServer(srv, internshipgrpc.NewReportingServer(reporting))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return internshipgrpc.NewReportingClient(conn), mock
}

func withKey(key string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "x-api-key", key)
}

func expectTables(mock sqlmock.Sqlmock, names ...string) {
	rows := sqlmock.NewRows([]string{"TABLE_NAME", "TABLE_ROWS"})
	for _, name := range names {
		rows.AddRow(name, int64(3))
	}
	mock.ExpectQuery(listTablesQuery).WithArgs("internship_db").WillReturnRows(rows)
}

func TestReporting_RequiresAPIKey(t *testing.T) {
	client, _ := startServer(t)

	_, err := client.Overview(context.Background(), &emptypb.Empty{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	_, err = client.Overview(withKey("wrong"), &emptypb.Empty{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected unauthenticated for wrong key, got %v", err)
	}
}

func TestReporting_Overview(t *testing.T) {
	client, mock := startServer(t)

	expectTables(mock, "students")
	mock.ExpectQuery(`(?s)FROM information_schema.columns`).
		WithArgs("internship_db", "students").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "COLUMN_KEY"}).
			AddRow("id", "int", "NO", "PRI").
			AddRow("name", "varchar", "NO", ""))

	out, err := client.Overview(withKey(testAPIKey), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}

	tables := out.GetFields()["tables"].GetListValue().GetValues()
	if len(tables) != 1 {
		t.Fatalf("unexpected tables: %v", tables)
	}
	table := tables[0].GetStructValue().GetFields()
	if table["table"].GetStringValue() != "students" || table["rows"].GetNumberValue() != 3 {
		t.Fatalf("unexpected table: %v", table)
	}
	if columns := table["columns"].GetListValue().GetValues(); len(columns) != 2 {
		t.Fatalf("unexpected columns: %v", columns)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReporting_TableSample(t *testing.T) {
	client, mock := startServer(t)

	expectTables(mock, "companies")
	mock.ExpectQuery("SELECT \\* FROM `companies` LIMIT \\?").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).AddRow(int64(1), "Acme", nil))

	in, _ := structpb.NewStruct(map[string]any{"table": "companies", "limit": 2})
	out, err := client.TableSample(withKey(testAPIKey), in)
	if err != nil {
		t.Fatalf("table sample failed: %v", err)
	}

	rows := out.GetFields()["rows"].GetListValue().GetValues()
	if len(rows) != 1 {
		t.Fatalf("unexpected rows: %v", rows)
	}
	row := rows[0].GetStructValue().GetFields()
	if row["name"].GetStringValue() != "Acme" || row["id"].GetNumberValue() != 1 {
		t.Fatalf("unexpected row: %v", row)
	}
	if _, isNull := row["phone"].GetKind().(*structpb.Value_NullValue); !isNull {
		t.Fatalf("expected null phone, got %v", row["phone"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReporting_TableSampleUnknownTable(t *testing.T) {
	client, mock := startServer(t)

	expectTables(mock, "companies")

	in, _ := structpb.NewStruct(map[string]any{"table": "secrets"})
	_, err := client.TableSample(withKey(testAPIKey), in)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestReporting_TableSampleRequiresTable(t *testing.T) {
	client, _ := startServer(t)

	_, err := client.TableSample(withKey(testAPIKey), &structpb.Struct{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestReporting_RunQueryRejectsWrites(t *testing.T) {
	client, _ := startServer(t)

	in, _ := structpb.NewStruct(map[string]any{"query": "UPDATE students SET name = 'x'"})
	_, err := client.RunQuery(withKey(testAPIKey), in)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestReporting_RunQuery(t *testing.T) {
	client, mock := startServer(t)

	mock.ExpectQuery(`SHOW TABLES`).
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_internship_db"}).AddRow([]byte("students")))

	in, _ := structpb.NewStruct(map[string]any{"query": "SHOW TABLES"})
	out, err := client.RunQuery(withKey(testAPIKey), in)
	if err != nil {
		t.Fatalf("run query failed: %v", err)
	}

	columns := out.GetFields()["columns"].GetListValue().GetValues()
	if len(columns) != 1 || columns[0].GetStringValue() != "Tables_in_internship_db" {
		t.Fatalf("unexpected columns: %v", columns)
	}
	rows := out.GetFields()["rows"].GetListValue().GetValues()
	if len(rows) != 1 || rows[0].GetStructValue().GetFields()["Tables_in_internship_db"].GetStringValue() != "students" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}
