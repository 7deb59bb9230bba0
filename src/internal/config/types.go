package config

// Config holds the deployment settings for a single run. It is built once at
// startup, validated, and passed by value into every component that needs it.
type Config struct {
	// Host is the ssh destination for the remote server, e.g. "deploy@example.com"
	// or an ssh config alias.
	Host string `json:"host" toml:"host"`

	// RemotePath is the absolute base path of the deployment on the remote
	// server.
	RemotePath string `json:"remotePath" toml:"remotePath"`

	// ContentDir is the CMS content directory, relative to both the local
	// working directory and RemotePath.
	ContentDir string `json:"contentDir,omitempty" toml:"contentDir,omitempty"`

	// BackupsDir is the local root under which pre-pull snapshots are created.
	BackupsDir string `json:"backupsDir,omitempty" toml:"backupsDir,omitempty"`

	// MaxBackups bounds how many snapshots are retained after a pull. Zero or
	// negative keeps everything.
	MaxBackups int `json:"maxBackups,omitempty" toml:"maxBackups,omitempty"`

	// SSHBin and RsyncBin override the executables used for remote probing and
	// transfers.
	SSHBin   string `json:"sshBin,omitempty" toml:"sshBin,omitempty"`
	RsyncBin string `json:"rsyncBin,omitempty" toml:"rsyncBin,omitempty"`

	// ConnectTimeoutSecs bounds the initial connectivity probe. Transfers
	// themselves are not bounded.
	ConnectTimeoutSecs int `json:"connectTimeoutSecs,omitempty" toml:"connectTimeoutSecs,omitempty"`
}

// Environment-style keys accepted in .env configuration files.
const (
	KeyHost           = "DEPLOY_HOST"
	KeyRemotePath     = "DEPLOY_PATH"
	KeyContentDir     = "DEPLOY_CONTENT_DIR"
	KeyBackupsDir     = "DEPLOY_BACKUPS_DIR"
	KeyMaxBackups     = "DEPLOY_MAX_BACKUPS"
	KeySSHBin         = "DEPLOY_SSH_BIN"
	KeyRsyncBin       = "DEPLOY_RSYNC_BIN"
	KeyConnectTimeout = "DEPLOY_CONNECT_TIMEOUT"
)

// Defaults applied after parsing.
const (
	DefaultContentDir     = "content"
	DefaultBackupsDir     = "backups"
	DefaultSSHBin         = "ssh"
	DefaultRsyncBin       = "rsync"
	DefaultConnectTimeout = 5
)
