package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

var registryCheckCode string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the student/module registry",
	Long: `Administrative commands for the registry spreadsheet configured via
registry.path.`,
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry entries",
	RunE:  runRegistryList,
}

var registryCheckCmd = &cobra.Command{
	Use:   "check [student-id]",
	Short: "Resolve a student's module assignment",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegistryCheck,
}

func init() {
	registryCheckCmd.Flags().StringVar(&registryCheckCode, "code", "", "access code (prompted when omitted)")
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryCheckCmd)
	rootCmd.AddCommand(registryCmd)
}

func runRegistryList(cmd *cobra.Command, _ []string) error {
	if moduleRegistry == nil {
		return errors.New("module registry not configured (set registry.path)")
	}

	entries, err := moduleRegistry.Entries(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list registry entries: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("Registry is empty.")
		return nil
	}

	cmd.Printf("Registry entries (%d):\n\n", len(entries))
	for _, entry := range entries {
		cmd.Printf("  %s  %s / %s  %s\n", entry.StudentID, entry.Programme, entry.Module, entry.FileName)
	}
	return nil
}

func runRegistryCheck(cmd *cobra.Command, args []string) error {
	if moduleRegistry == nil {
		return errors.New("module registry not configured (set registry.path)")
	}

	code := registryCheckCode
	if code == "" {
		cmd.Print("Access code: ")
		code = readPassword()
		cmd.Println()
	}

	assignment, err := moduleRegistry.Resolve(cmd.Context(), args[0], code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccessDenied):
			return fmt.Errorf("access code does not match the registry: %w", err)
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("student not in the registry: %w", err)
		default:
			return fmt.Errorf("registry lookup failed: %w", err)
		}
	}

	cmd.Printf("Student:   %s\n", assignment.StudentID)
	cmd.Printf("Programme: %s\n", assignment.Programme)
	cmd.Printf("Module:    %s\n", assignment.Module)
	cmd.Printf("Documents: %s\n", strings.Join(assignment.Files, ", "))
	return nil
}
