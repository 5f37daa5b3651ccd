package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendtrack/internal/api"
)

// teamCmd is the parent command for team member operations.
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage team members",
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team members",
	RunE:  runTeamList,
}

var inviteInput api.InviteInput

var teamInviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Invite a team member",
	RunE:  runTeamInvite,
}

var teamUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a team member's email or role",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamUpdate,
}

var teamRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a team member",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamRemove,
}

func init() {
	for _, c := range []*cobra.Command{teamInviteCmd, teamUpdateCmd} {
		c.Flags().StringVarP(&inviteInput.Email, "email", "e", "", "Member email")
		c.Flags().StringVarP(&inviteInput.Role, "role", "r", "viewer", "Role (viewer, editor, admin)")
		_ = c.MarkFlagRequired("email")
	}

	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamInviteCmd)
	teamCmd.AddCommand(teamUpdateCmd)
	teamCmd.AddCommand(teamRemoveCmd)
}

func runTeamList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	members, err := a.team.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Println("No team members.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.Role)
	}
	return w.Flush()
}

func runTeamInvite(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	member, err := a.team.Invite(cmd.Context(), inviteInput)
	if err != nil {
		return err
	}
	fmt.Printf("Invited %s as %s\n", member.Email, member.Role)
	return nil
}

func runTeamUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	member, err := a.team.Update(cmd.Context(), args[0], inviteInput)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s: %s (%s)\n", member.ID, member.Email, member.Role)
	return nil
}

func runTeamRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.team.Remove(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed team member %s\n", args[0])
	return nil
}
