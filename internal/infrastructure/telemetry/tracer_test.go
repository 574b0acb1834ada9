package telemetry

import "testing"

func TestExporterEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantHost     string
		wantInsecure bool
	}{
		{"http://localhost:4318", "localhost:4318", true},
		{"https://collector:4318/", "collector:4318", false},
		{"http://collector:4318/v1/traces", "collector:4318", true},
		{"collector:4318", "collector:4318", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			host, insecure := exporterEndpoint(tt.in)
			if host != tt.wantHost || insecure != tt.wantInsecure {
				t.Errorf("exporterEndpoint(%q) = (%q, %v), want (%q, %v)",
					tt.in, host, insecure, tt.wantHost, tt.wantInsecure)
			}
		})
	}
}

func TestTracerWithoutProvider(t *testing.T) {
	if Tracer() == nil {
		t.Fatal("Tracer() must never be nil")
	}
}
