package rsync_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamokano/rsyncer/pkg/connection"
	"github.com/williamokano/rsyncer/pkg/rsync"
)

func newLocal(t *testing.T, root string) *rsync.Rsync {
	t.Helper()
	conn, err := connection.New(connection.Config{Kind: connection.Local, DestinationRoot: root})
	require.NoError(t, err)
	return rsync.New(conn, zerolog.Nop())
}

func keyFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "id_rsa")
	require.NoError(t, os.WriteFile(path, []byte("key"), 0600))
	return path
}

var jpgGif = rsync.Overrides{
	Include: []string{"file1.jpg", "file2.gif"},
	Exclude: []string{"*"},
}

func TestCommand_DirectoryStandardization(t *testing.T) {
	r := newLocal(t, "")
	want := `rsync --archive --include="file1.jpg" --include="file2.gif" --exclude="*" /source/directory/ /dest/directory/ 2>&1`

	t.Run("trailing_slashes_present", func(t *testing.T) {
		assert.Equal(t, want, r.Command("/source/directory/", "dest/directory/", jpgGif))
	})

	t.Run("trailing_slashes_added", func(t *testing.T) {
		assert.Equal(t, want, r.Command("/source/directory", "dest/directory", jpgGif))
	})
}

func TestCommand_DestinationSameAsRoot(t *testing.T) {
	t.Run("no_destination_root", func(t *testing.T) {
		r := newLocal(t, "")
		assert.Equal(t,
			`rsync --archive --include="file1.jpg" --include="file2.gif" --exclude="*" /source/directory/ / 2>&1`,
			r.Command("/source/directory/", "", jpgGif))
	})

	t.Run("with_destination_root", func(t *testing.T) {
		r := newLocal(t, "/dest/root")
		assert.Equal(t,
			`rsync --archive --include="file1.jpg" --include="file2.gif" --exclude="*" /source/directory/ /dest/root/dest/directory/ 2>&1`,
			r.Command("/source/directory/", "dest/directory/", jpgGif))
	})
}

func TestCommand_FilenameEscaping(t *testing.T) {
	r := newLocal(t, "/dest/root")
	ov := rsync.Overrides{
		Include: []string{
			"file1's.jpg",
			`file2"test".gif`,
			"file[1].jpg",
			"file[?].jpg",
			"file[*].jpg",
		},
		Exclude: []string{"*"},
	}

	assert.Equal(t,
		`rsync --archive --include="file1's.jpg" --include="file2\"test\".gif" --include="file\[1\].jpg" --include="file\[\?\].jpg" --include="file\[\*\].jpg" --exclude="*" /source/directory/ /dest/root/dest/directory/ 2>&1`,
		r.Command("/source/directory/", "dest/directory/", ov))
}

func TestCommand_Akamai(t *testing.T) {
	t.Run("ssh_key", func(t *testing.T) {
		key := keyFile(t)
		conn, err := connection.New(connection.Config{
			Kind:            connection.Akamai,
			DestinationRoot: "/12345",
			Host:            "hostname",
			User:            "username",
			Auth:            connection.SSHKey(key),
		})
		require.NoError(t, err)
		r := rsync.New(conn, zerolog.Nop())

		assert.Equal(t,
			`rsync -e "ssh -i `+key+`" --archive --include="file1.jpg" --include="file2.gif" --exclude="*" /source/directory/ username@hostname::username/12345/dest/directory/ 2>&1`,
			r.Command("/source/directory/", "dest/directory/", jpgGif))
	})

	t.Run("password", func(t *testing.T) {
		conn, err := connection.New(connection.Config{
			Kind:            connection.Akamai,
			DestinationRoot: "/12345",
			Host:            "hostname",
			User:            "username",
			Auth:            connection.Password("the_password"),
		})
		require.NoError(t, err)
		r := rsync.New(conn, zerolog.Nop())

		cmd := r.Command("/source/directory/", "dest/directory/", jpgGif)
		assert.Equal(t,
			`rsync --archive --include="file1.jpg" --include="file2.gif" --exclude="*" /source/directory/ username@hostname::username/12345/dest/directory/ 2>&1`,
			cmd)
		assert.NotContains(t, cmd, "the_password")
	})
}

func TestCommand_Flags(t *testing.T) {
	r := newLocal(t, "")

	t.Run("dry_run", func(t *testing.T) {
		ov := jpgGif
		ov.DryRun = rsync.Bool(true)
		assert.Equal(t,
			`rsync --dry-run --verbose --archive --include="file1.jpg" --include="file2.gif" --exclude="*" /source/directory/ /dest/directory/ 2>&1`,
			r.Command("/source/directory/", "dest/directory/", ov))
	})

	t.Run("delete", func(t *testing.T) {
		ov := jpgGif
		ov.Delete = rsync.Bool(true)
		assert.Equal(t,
			`rsync --archive --delete --include="file1.jpg" --include="file2.gif" --exclude="*" /source/directory/ /dest/directory/ 2>&1`,
			r.Command("/source/directory/", "dest/directory/", ov))
	})

	t.Run("archive_off", func(t *testing.T) {
		assert.Equal(t,
			`rsync /src/ /dst/ 2>&1`,
			r.Command("/src", "dst", rsync.Overrides{Archive: rsync.Bool(false)}))
	})

	t.Run("working_directory", func(t *testing.T) {
		assert.Equal(t,
			`cd /work && rsync --archive src/ /dst/ 2>&1`,
			r.Command("src", "dst", rsync.Overrides{WorkingDir: rsync.String("/work")}))
	})

	t.Run("compress_and_relative_not_emitted", func(t *testing.T) {
		assert.Equal(t,
			`rsync --archive /src/ /dst/ 2>&1`,
			r.Command("/src", "dst", rsync.Overrides{Compress: rsync.Bool(true), Relative: rsync.Bool(true)}))
	})

	t.Run("empty_source_dropped", func(t *testing.T) {
		assert.Equal(t, `rsync --archive /dst/ 2>&1`, r.Command("", "dst", rsync.Overrides{}))
	})
}

func TestCommand_Deterministic(t *testing.T) {
	r := newLocal(t, "/root")
	ov := rsync.Overrides{Include: []string{"a[1]", "b?"}, Exclude: []string{"*"}, Delete: rsync.Bool(true)}

	first := r.Command("/src", "dst", ov)
	second := r.Command("/src", "dst", ov)
	assert.Equal(t, first, second)
}

func TestArgs(t *testing.T) {
	key := keyFile(t)
	conn, err := connection.New(connection.Config{
		Kind:            connection.Remote,
		DestinationRoot: "/srv",
		Host:            "hostname",
		User:            "username",
		Auth:            connection.SSHKey(key),
	})
	require.NoError(t, err)
	r := rsync.New(conn, zerolog.Nop())

	opts := rsync.DefaultOptions().Merge(rsync.Overrides{
		DryRun:     rsync.Bool(true),
		Delete:     rsync.Bool(true),
		Include:    []string{"file[1].jpg", `q"uote`},
		Exclude:    []string{"*"},
		WorkingDir: rsync.String("/work"),
	})

	assert.Equal(t, []string{
		"-e", "ssh -i " + key,
		"--dry-run", "--verbose",
		"--archive",
		"--delete",
		`--include=file\[1\].jpg`,
		`--include=q"uote`,
		"--exclude=*",
		"/source/",
		"username@hostname:/srv/dest/",
	}, r.Args("/source", "dest", opts))
}

func TestCommand_RemotePasswordPort(t *testing.T) {
	conn, err := connection.New(connection.Config{
		Kind:            connection.Remote,
		DestinationRoot: "/srv/d",
		Host:            "h",
		Port:            2222,
		User:            "u",
		Auth:            connection.Password("pw"),
	})
	require.NoError(t, err)
	r := rsync.New(conn, zerolog.Nop())

	assert.Equal(t, `rsync -e "ssh -p 2222" --archive /src/ u@h:/srv/d/ 2>&1`, r.Command("/src", "", rsync.Overrides{}))
	assert.Equal(t,
		[]string{"-e", "ssh -p 2222", "--archive", "/src/", "u@h:/srv/d/"},
		r.Args("/src", "", rsync.DefaultOptions()))

	args, err := r.FilesArgs("/src", "", []string{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-e", "ssh -p 2222", "-a", "--include=a.txt", "--exclude=*", "/src/", "u@h:/srv/d/"}, args)
}

func TestCompileFilesCommand(t *testing.T) {
	r := newLocal(t, "/dest/root")

	t.Run("files", func(t *testing.T) {
		cmd, err := r.CompileFilesCommand("/source", "sub", []string{"a.jpg", `b"c".gif`, "d[1].png"})
		require.NoError(t, err)
		assert.Equal(t,
			`rsync -a --include="a.jpg" --include="b\"c\".gif" --include="d[1].png" --exclude="*" /source/ /dest/root/sub/ 2>&1`,
			cmd)
	})

	t.Run("ignores_general_options", func(t *testing.T) {
		r.Defaults.DryRun = true
		r.Defaults.Delete = true
		t.Cleanup(func() { r.Defaults = rsync.DefaultOptions() })

		cmd, err := r.CompileFilesCommand("/source", "", []string{"a.jpg"})
		require.NoError(t, err)
		assert.Equal(t, `rsync -a --include="a.jpg" --exclude="*" /source/ /dest/root/ 2>&1`, cmd)
	})

	t.Run("empty_list", func(t *testing.T) {
		_, err := r.CompileFilesCommand("/source", "sub", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, rsync.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "List of files to include cannot be empty")
	})
}

func TestFilesArgs(t *testing.T) {
	r := newLocal(t, "/dest/root")

	args, err := r.FilesArgs("/source", "sub", []string{"a.jpg", `b"c".gif`})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-a",
		"--include=a.jpg",
		`--include=b"c".gif`,
		"--exclude=*",
		"/source/",
		"/dest/root/sub/",
	}, args)

	_, err = r.FilesArgs("/source", "sub", []string{})
	assert.ErrorIs(t, err, rsync.ErrInvalidConfig)
}

func TestOptionsMerge(t *testing.T) {
	defaults := rsync.DefaultOptions()
	assert.True(t, defaults.Archive)
	assert.True(t, defaults.Compress)
	assert.False(t, defaults.Delete)
	assert.False(t, defaults.DryRun)

	merged := defaults.Merge(rsync.Overrides{Delete: rsync.Bool(true), Archive: rsync.Bool(false)})
	assert.True(t, merged.Delete)
	assert.False(t, merged.Archive)
	assert.True(t, merged.Compress, "unset fields keep their defaults")

	layered := rsync.Overrides{DryRun: rsync.Bool(true), Exclude: []string{"*.tmp"}}.
		Merge(rsync.Overrides{DryRun: rsync.Bool(false)})
	require.NotNil(t, layered.DryRun)
	assert.False(t, *layered.DryRun)
	assert.Equal(t, []string{"*.tmp"}, layered.Exclude)
}
