package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		targets  []string
		icon     string
		cmdName  string
		path     string
		terminal bool
		want     []string
	}{
		{
			name:     "plain command",
			template: "editor",
			want:     []string{"editor"},
		},
		{
			name:     "single file placeholder",
			template: "editor %f",
			targets:  []string{"/home/user/notes.txt", "/home/user/other.txt"},
			want:     []string{"editor", "/home/user/notes.txt"},
		},
		{
			name:     "many files placeholder",
			template: "editor %F",
			targets:  []string{"/a.txt", "/b.txt"},
			want:     []string{"editor", "/a.txt", "/b.txt"},
		},
		{
			name:     "file placeholder decodes file uris",
			template: "editor %F",
			targets:  []string{"file:///home/user/my%20notes.txt"},
			want:     []string{"editor", "/home/user/my notes.txt"},
		},
		{
			name:     "uri placeholders",
			template: "browser %U",
			targets:  []string{"/home/user/page.html", "https://example.com/"},
			want:     []string{"browser", "file:///home/user/page.html", "https://example.com/"},
		},
		{
			name:     "single uri placeholder",
			template: "browser %u",
			targets:  []string{"https://example.com/", "https://other.example/"},
			want:     []string{"browser", "https://example.com/"},
		},
		{
			name:     "icon expands to two arguments",
			template: "app %i %f",
			targets:  []string{"/f"},
			icon:     "app-icon",
			want:     []string{"app", "--icon", "app-icon", "/f"},
		},
		{
			name:     "icon placeholder without icon disappears",
			template: "app %i %f",
			targets:  []string{"/f"},
			want:     []string{"app", "/f"},
		},
		{
			name:     "name and launcher path codes",
			template: "app --name %c --desktop-file %k",
			cmdName:  "My App",
			path:     "/usr/share/applications/app.desktop",
			want:     []string{"app", "--name", "My App", "--desktop-file", "/usr/share/applications/app.desktop"},
		},
		{
			name:     "embedded field code",
			template: "viewer --file=%f",
			targets:  []string{"/tmp/a.pdf"},
			want:     []string{"viewer", "--file=/tmp/a.pdf"},
		},
		{
			name:     "literal percent",
			template: "app --progress=50%%",
			want:     []string{"app", "--progress=50%"},
		},
		{
			name:     "quoted arguments survive tokenization",
			template: `"my editor" %f`,
			targets:  []string{"/f"},
			want:     []string{"my editor", "/f"},
		},
		{
			name:     "deprecated codes expand to nothing",
			template: "app %n%f",
			targets:  []string{"/f"},
			want:     []string{"app", "/f"},
		},
		{
			name:     "no targets leaves file code empty",
			template: "editor %f",
			want:     []string{"editor", ""},
		},
		{
			name:     "terminal wraps the command",
			template: "top",
			terminal: true,
			want:     []string{"x-terminal-emulator", "-e", "top"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := Parse(tt.template, tt.targets, tt.icon, tt.cmdName, tt.path, tt.terminal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, argv)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"dangling percent", "app %"},
		{"list code embedded in token", "app --files=%F"},
		{"unbalanced quote", `app "broken`},
		{"empty template", ""},
		{"icon code embedded in token", "app x%i"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.template, []string{"/f"}, "icon", "name", "/p", false)
			assert.Error(t, err)
		})
	}
}

func TestTargetPath(t *testing.T) {
	tests := []struct {
		target string
		want   string
		ok     bool
	}{
		{"/plain/path", "/plain/path", true},
		{"file:///with%20space", "/with space", true},
		{"https://example.com/x", "", false},
	}

	for _, tt := range tests {
		p, ok := TargetPath(tt.target)
		assert.Equal(t, tt.ok, ok, tt.target)
		assert.Equal(t, tt.want, p, tt.target)
	}
}
