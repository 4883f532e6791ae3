package dataset

import (
	"strings"
	"testing"
)

func TestOpenMySQL(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		wantErr bool
	}{
		{"valid dsn", "tennis:secret@tcp(localhost:3306)/tennis", false},
		{"missing database separator", "tennis:secret@tcp(localhost:3306)", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := OpenMySQL(tt.dsn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenMySQL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !strings.HasPrefix(err.Error(), "parse mysql dsn") {
					t.Errorf("error = %q, want parse mysql dsn prefix", err.Error())
				}
				return
			}
			defer db.Close()
			if NewMySQLSource(db).Name() != "mysql" {
				t.Error("unexpected source name")
			}
		})
	}
}
