package cli

import "testing"

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantLevel  logLevel
		wantFormat logFormat
		wantPretty bool
		wantCaller bool
	}{
		{
			name:       "separate_values",
			args:       []string{"compile", "--log-level", "debug", "doc.qd", "--log-format", "json"},
			wantLevel:  "debug",
			wantFormat: "json",
			wantPretty: true,
		},
		{
			name:       "assigned_values",
			args:       []string{"--log-level=trace", "--log-format=text", "--log-caller"},
			wantLevel:  "trace",
			wantFormat: "text",
			wantPretty: true,
			wantCaller: true,
		},
		{
			name:       "negated_bools",
			args:       []string{"--no-log-pretty", "--log-caller=true", "--no-log-caller=true"},
			wantPretty: false,
			wantCaller: false,
		},
		{
			name:       "explicit_false",
			args:       []string{"--log-pretty=false", "--no-log-caller=false"},
			wantPretty: false,
			wantCaller: true,
		},
		{
			name:       "missing_value",
			args:       []string{"--log-level", "--strict"},
			wantLevel:  "",
			wantPretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.wantLevel || f.Format != tt.wantFormat {
				t.Errorf("scan() level, format = %q, %q, want %q, %q",
					f.Level, f.Format, tt.wantLevel, tt.wantFormat)
			}

			if f.Pretty != tt.wantPretty || f.Caller != tt.wantCaller {
				t.Errorf("scan() pretty, caller = %v, %v, want %v, %v",
					f.Pretty, f.Caller, tt.wantPretty, tt.wantCaller)
			}
		})
	}
}
