package main

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osm2svg/internal/pkg/errors"
)

const sampleOSM = `<osm>
  <node id="1" lat="45.01" lon="5.01"/>
  <node id="2" lat="45.03" lon="5.05"/>
  <node id="3" lat="45.09" lon="5.0"/>
  <node id="4" lat="45.06" lon="5.1"/>
  <way id="10"><nd ref="1"/><nd ref="2"/><tag k="ele" v="100"/></way>
  <way id="11"><nd ref="3"/><nd ref="4"/><tag k="ele" v="150"/></way>
</osm>`

func TestReorderArgs(t *testing.T) {
	flags := newRootCmd(afero.NewMemMapFs()).Flags()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "trailing flags",
			args: []string{"alps", "45", "5", "45.1", "5.2", "-s", "20", "--sort_by_height"},
			want: []string{"-s", "20", "--sort_by_height", "--", "alps", "45", "5", "45.1", "5.2"},
		},
		{
			name: "negative coordinates",
			args: []string{"cape", "-34.0", "18.4", "-33.9", "18.5"},
			want: []string{"--", "cape", "-34.0", "18.4", "-33.9", "18.5"},
		},
		{
			name: "negative flag value stays with its flag",
			args: []string{"--big_lines_step", "-1", "alps", "45", "5", "45.1", "5.2"},
			want: []string{"--big_lines_step", "-1", "--", "alps", "45", "5", "45.1", "5.2"},
		},
		{
			name: "inline values",
			args: []string{"alps", "--source=osmfile", "45", "-s20", "5", "45.1", "5.2"},
			want: []string{"--source=osmfile", "-s20", "--", "alps", "45", "5", "45.1", "5.2"},
		},
		{
			name: "explicit separator",
			args: []string{"--sort_by_height", "--", "alps", "-1", "5", "45.1", "5.2"},
			want: []string{"--sort_by_height", "--", "alps", "-1", "5", "45.1", "5.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reorderArgs(flags, tt.args))
		})
	}
}

func TestParseRequest(t *testing.T) {
	opts := &options{step: 20, sortByHeight: true, bigLinesStep: 100}

	req, err := parseRequest([]string{"alps", "45", "5", "45.1", "5.2"}, opts)
	require.NoError(t, err)

	assert.Equal(t, "alps", req.Name)
	assert.Equal(t, 45.0, req.MinLat)
	assert.Equal(t, 5.2, req.MaxLon)
	assert.Equal(t, 20.0, req.Step)
	assert.True(t, req.SortByHeight)
	assert.Equal(t, 100, req.BigLinesStep)

	_, err = parseRequest([]string{"alps", "north", "5", "45.1", "5.2"}, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_LAT")
}

func execute(t *testing.T, fs afero.Fs, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd(fs)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(reorderArgs(cmd.Flags(), args))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_RendersFromOSMFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/result/alps.osm", []byte(sampleOSM), 0o644))

	stdout, _, err := execute(t, fs,
		"alps", "45", "5", "45.1", "5.2",
		"--source", "osmfile", "--result_dir", "/result", "--env_file", "", "--sort_by_height")
	require.NoError(t, err)

	assert.Equal(t, "/result/alps.svg", strings.TrimSpace(stdout))

	data, err := afero.ReadFile(fs, "/result/alps.svg")
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="alt_100"`)
	assert.Contains(t, string(data), `id="alt_150"`)
}

func TestRootCmd_NoGeometryIsNotAnError(t *testing.T) {
	fs := afero.NewMemMapFs()

	stdout, stderr, err := execute(t, fs,
		"empty", "45", "5", "45.1", "5.2",
		"--source", "osmfile", "--result_dir", "/result", "--env_file", "")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no contour lines")

	exists, _ := afero.Exists(fs, "/result/empty.svg")
	assert.False(t, exists)
}

func TestRootCmd_InvalidBoundingBox(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(),
		"alps", "45.1", "5", "45", "5.2",
		"--source", "osmfile", "--result_dir", "/result", "--env_file", "")

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidRequest))
}

func TestRootCmd_WrongArgumentCount(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "alps", "45", "5")

	assert.Error(t, err)
}
