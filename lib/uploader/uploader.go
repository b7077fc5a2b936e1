package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Config describes an optional SFTP destination for the exported
// artifact. Host empty means uploading is disabled.
type Config struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	Password  string `json:"password"`
	RemoteDir string `json:"remote_dir"`
}

// UploadFile copies a local artifact to the configured remote
// directory, creating it if needed.
func UploadFile(ctx context.Context, cfg Config, localPath string) error {
	if cfg.Host == "" || cfg.User == "" {
		return fmt.Errorf("uploader: missing host or user")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}

	sshCfg := &ssh.ClientConfig{
		User: cfg.User,
		Auth: []ssh.AuthMethod{ssh.Password(cfg.Password)},
		// TODO: verify against known_hosts once delivery targets settle
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         20 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialResult struct {
		client *ssh.Client
		err    error
	}
	dialed := make(chan dialResult, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		dialed <- dialResult{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return fmt.Errorf("uploader: dial canceled: %w", ctx.Err())
	case r := <-dialed:
		if r.err != nil {
			return fmt.Errorf("uploader: dial: %w", r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("uploader: new client: %w", err)
	}
	defer sftpClient.Close()

	if err := sftpClient.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("uploader: mkdir %s: %w", cfg.RemoteDir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("uploader: open local file: %w", err)
	}
	defer src.Close()

	remotePath := path.Join(cfg.RemoteDir, path.Base(localPath))
	dst, err := sftpClient.Create(remotePath)
	if err != nil {
		return fmt.Errorf("uploader: create remote file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("uploader: copy: %w", err)
	}

	slog.Info("uploaded artifact", "local", localPath, "remote", remotePath, "host", cfg.Host)
	return nil
}
