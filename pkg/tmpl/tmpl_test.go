package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "simple substitution",
			tmpl: "hello {{ .Name }}",
			data: map[string]string{"Name": "world"},
			want: "hello world",
		},
		{
			name: "struct data",
			tmpl: "{{ .Name }} in {{ .Dir }}",
			data: struct {
				Name string
				Dir  string
			}{Name: "main.go", Dir: "/tmp"},
			want: "main.go in /tmp",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Name }",
			data:    map[string]string{"Name": "test"},
			wantErr: true,
		},
		{
			name: "base and dir",
			tmpl: "{{ base .Path }} / {{ dir .Path }}",
			data: map[string]string{"Path": "/src/app/main.go"},
			want: "main.go / /src/app",
		},
		{
			name: "code span",
			tmpl: "{{ code .Name }}",
			data: map[string]string{"Name": "main.go"},
			want: "`main.go`",
		},
		{
			name: "code span containing backticks",
			tmpl: "{{ code .Name }}",
			data: map[string]string{"Name": "a`b"},
			want: "``a`b``",
		},
		{
			name: "code span starting with backtick",
			tmpl: "{{ code .Name }}",
			data: map[string]string{"Name": "`x"},
			want: "`` `x ``",
		},
		{
			name: "escape",
			tmpl: "{{ escape .Msg }}",
			data: map[string]string{"Msg": "my_file *draft* [1]"},
			want: `my\_file \*draft\* \[1\]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
