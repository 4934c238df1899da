package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quickhire/profile-engine/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply edits to your profile and save",
		Long: `Applies the given edits in one session and saves. Examples:

  profilectl edit --set city=Dallas --set total_experience=7
  profilectl edit --add languages=Spanish --remove desired_roles=0
  profilectl edit --skill "Terraform=2 years" --drop-skill 1`,
		Run: runEdit,
	}
	cmd.Flags().StringArray("set", nil, "Set a scalar field: name=value")
	cmd.Flags().StringArray("toggle", nil, "Set a boolean field: name=true|false")
	cmd.Flags().StringArray("add", nil, "Append to a tag field: field=value")
	cmd.Flags().StringArray("remove", nil, "Remove from a tag field: field=index")
	cmd.Flags().StringArray("skill", nil, "Add a skill: name=experience")
	cmd.Flags().IntSlice("drop-skill", nil, "Remove the skill at an index")
	RootCmd.AddCommand(cmd)
}

func splitPair(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return "", "", fmt.Errorf("expected name=value, got %q", raw)
	}
	return name, value, nil
}

func runEdit(cmd *cobra.Command, _ []string) {
	st, client := loadStore(cmd)
	s := editor.NewSession(st, client)
	s.OnNotice(func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), msg) })

	if err := s.BeginEdit(); err != nil {
		exitErr("begin edit", err)
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	for _, raw := range sets {
		name, value, err := splitPair(raw)
		if err != nil {
			exitErr("--set", err)
		}
		if err := s.SetField(name, value); err != nil {
			exitErr("--set "+name, err)
		}
	}

	toggles, _ := cmd.Flags().GetStringArray("toggle")
	for _, raw := range toggles {
		name, value, err := splitPair(raw)
		if err != nil {
			exitErr("--toggle", err)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitErr("--toggle "+name, err)
		}
		if err := s.SetToggle(name, b); err != nil {
			exitErr("--toggle "+name, err)
		}
	}

	adds, _ := cmd.Flags().GetStringArray("add")
	for _, raw := range adds {
		field, value, err := splitPair(raw)
		if err != nil {
			exitErr("--add", err)
		}
		if err := s.AddArrayItem(field, value); err != nil {
			exitErr("--add "+field, err)
		}
	}

	removes, _ := cmd.Flags().GetStringArray("remove")
	for _, raw := range removes {
		field, idxStr, err := splitPair(raw)
		if err != nil {
			exitErr("--remove", err)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			exitErr("--remove "+field, err)
		}
		if err := s.RemoveArrayItem(field, idx); err != nil {
			exitErr("--remove "+field, err)
		}
	}

	skills, _ := cmd.Flags().GetStringArray("skill")
	for _, raw := range skills {
		name, exp, err := splitPair(raw)
		if err != nil {
			exitErr("--skill", err)
		}
		sk := s.Skills()
		sk.StartAdd()
		sk.SetName(name)
		sk.SetExperience(exp)
		if !sk.CommitAdd() {
			fmt.Fprintf(cmd.ErrOrStderr(), "skill %q skipped (empty or duplicate)\n", name)
		}
	}

	drops, _ := cmd.Flags().GetIntSlice("drop-skill")
	for _, idx := range drops {
		s.Skills().Remove(idx)
	}

	if err := s.Save(cmd.Context()); err != nil {
		for field, msg := range s.Errors() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
		}
		exitErr("save", err)
	}

	rec, _ := st.Current()
	printJSON(rec)
	fmt.Printf("saved. completeness: %d%%\n", st.Completeness())
}
