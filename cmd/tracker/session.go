package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"asura/tracker/internal/repository"
	"asura/tracker/internal/store"
	"asura/tracker/internal/syncer"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

// readPassword returns the flag value or the first line of stdin.
func readPassword(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}

func (a *app) saveToken(ctx context.Context, token string) error {
	if err := a.db.Put(ctx, store.TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func sessionCmds(a *app) []*cobra.Command {
	var loginPassword string
	login := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and pull the server document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			pw, err := readPassword(cmd, loginPassword)
			if err != nil {
				return err
			}
			token, err := c.Login(cmd.Context(), args[0], pw)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err := a.saveToken(cmd.Context(), token); err != nil {
				return err
			}
			if err := syncer.NewPusher(a.store, c.WithToken(token), a.cfg.Client.SyncInterval, a.log).Pull(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", args[0])
			return nil
		},
	}
	login.Flags().StringVarP(&loginPassword, "password", "p", "", "Password, read from stdin when empty")

	var (
		registerPassword string
		name             string
	)
	register := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account; the server seeds its document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			pw, err := readPassword(cmd, registerPassword)
			if err != nil {
				return err
			}
			token, err := c.Register(cmd.Context(), args[0], pw, name)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			if err := a.saveToken(cmd.Context(), token); err != nil {
				return err
			}
			if err := syncer.NewPusher(a.store, c.WithToken(token), a.cfg.Client.SyncInterval, a.log).Pull(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", args[0])
			return nil
		},
	}
	register.Flags().StringVarP(&registerPassword, "password", "p", "", "Password, read from stdin when empty")
	register.Flags().StringVar(&name, "name", "", "Display name")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token; the local document is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.db.Delete(cmd.Context(), store.TokenKey); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", p.Name, p.Email)
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Snapshot the server document and print a download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			url, err := c.ExportState(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	return []*cobra.Command{login, register, logout, whoami, syncCmd(a), export}
}

func syncCmd(a *app) *cobra.Command {
	pusher := func(cmd *cobra.Command) (*syncer.Pusher, error) {
		c, err := a.client(cmd.Context())
		if err != nil {
			return nil, err
		}
		if !c.HasSession() {
			return nil, fmt.Errorf("%w: run %s login first", syncer.ErrNoSession, appName)
		}
		return syncer.NewPusher(a.store, c, a.cfg.Client.SyncInterval, a.log), nil
	}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull the server document, then push the merged result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pusher(cmd)
			if err != nil {
				return err
			}
			if err := p.Pull(cmd.Context()); err != nil {
				return err
			}
			if _, err := p.Push(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "synced")
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Apply the server document locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pusher(cmd)
			if err != nil {
				return err
			}
			return p.Pull(cmd.Context())
		},
	}, &cobra.Command{
		Use:   "push",
		Short: "Replace the server document with the local one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pusher(cmd)
			if err != nil {
				return err
			}
			pushed, err := p.Push(cmd.Context())
			if err != nil {
				return err
			}
			if !pushed {
				return errNoChange
			}
			fmt.Fprintln(cmd.OutOrStdout(), "pushed")
			return nil
		},
	}, &cobra.Command{
		Use:   "watch",
		Short: "Pull once, then push on every sync interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pusher(cmd)
			if err != nil {
				return err
			}
			if err := p.Start(cmd.Context()); err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case <-cmd.Context().Done():
			}
			a.log.Info("stopping sync")

			select {
			case <-p.Stop().Done():
			case <-time.After(shutdownTimeout):
				a.log.Warn("push still in flight at shutdown")
			}
			// Flush whatever was logged since the last tick.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_, err = p.Push(ctx)
			return err
		},
	})
	return cmd
}
