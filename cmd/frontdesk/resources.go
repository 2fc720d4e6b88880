package main

import (
	"bufio"
	"flag"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/target/frontdesk-console/internal/domain/model"
	"github.com/target/frontdesk-console/internal/service"
)

type subcommand struct {
	description string
	run         commandFn
}

// dispatch picks a subcommand by its first argument. Flags without a subcommand run def.
func dispatch(cmdCtx *commandContext, name, def string, args []string, subs map[string]subcommand) error {
	sub := def
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}
	names := make([]string, 0, len(subs))
	for n := range subs {
		names = append(names, n)
	}
	sort.Strings(names)

	if sub == "help" {
		if err := writef(cmdCtx.Out, "Usage: frontdesk %s <subcommand> [flags]\n\n", name); err != nil {
			return err
		}
		for _, n := range names {
			if err := writef(cmdCtx.Out, "  %-20s %s\n", n, subs[n].description); err != nil {
				return err
			}
		}
		return nil
	}
	s, ok := subs[sub]
	if !ok {
		return usagef("%s: unknown subcommand %q (want one of: %s)", name, sub, strings.Join(names, ", "))
	}
	return s.run(cmdCtx, args)
}

// positional parses flags and returns the single positional argument.
func positional(fs *flag.FlagSet, args []string, what string) (string, error) {
	if err := parseFlags(fs, args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 || strings.TrimSpace(fs.Arg(0)) == "" {
		return "", usagef("%s: expected exactly one %s", fs.Name(), what)
	}
	return strings.TrimSpace(fs.Arg(0)), nil
}

func addPageFlags(fs *flag.FlagSet, req *model.PageRequest) {
	fs.IntVar(&req.Page, "page", 0, "Zero-based page number")
	fs.IntVar(&req.Size, "size", 0, "Page size (backend default when 0)")
}

func pageFooter(tw *tabwriter.Writer, info model.PageInfo, shown int) error {
	return row(tw, fmt.Sprintf("\nPage %d of %d (%d shown, %d total)",
		info.Page+1, max(info.TotalPages, 1), shown, info.TotalElements))
}

func now() string {
	return time.Now().Format(time.RFC3339)
}

// Visitors

func runVisitors(cmdCtx *commandContext, args []string) error {
	return dispatch(cmdCtx, "visitors", "list", args, map[string]subcommand{
		"list":     {description: "List visitors", run: runVisitorsList},
		"get":      {description: "Show one visitor", run: runVisitorsGet},
		"create":   {description: "Record a visitor check-in", run: runVisitorsCreate},
		"checkout": {description: "Check a visitor out", run: runVisitorsCheckout},
	})
}

func runVisitorsList(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "visitors list")
	var opts model.VisitorListOptions
	var out outputOptions
	addPageFlags(fs, &opts.PageRequest)
	fs.StringVar(&opts.Search, "search", "", "Free-text search")
	fs.StringVar(&opts.Purpose, "purpose", "", "Filter by purpose of visit")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	page, err := cmdCtx.Services.FrontOffice.ListVisitors(cmdCtx.Ctx, opts)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, page, func(tw *tabwriter.Writer) error {
		if err := row(tw, "ID", "NAME", "PHONE", "PURPOSE", "PERSONS", "CHECK-IN", "CHECK-OUT", "STATUS"); err != nil {
			return err
		}
		for _, v := range page.Content {
			if err := row(tw, v.ID, v.VisitorName, v.PhoneNumber, v.Purpose, v.NumberOfPersons,
				orDash(v.CheckInTime), orDash(v.CheckOutTime), orDash(v.Status)); err != nil {
				return err
			}
		}
		return pageFooter(tw, page.Page, len(page.Content))
	})
}

func runVisitorsGet(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "visitors get")
	var out outputOptions
	addOutputFlags(fs, &out)
	id, err := positional(fs, args, "visitor id")
	if err != nil {
		return err
	}
	v, err := cmdCtx.Services.FrontOffice.GetVisitor(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	return renderVisitor(cmdCtx, out, v)
}

func renderVisitor(cmdCtx *commandContext, out outputOptions, v model.Visitor) error {
	return render(cmdCtx.Out, out, v, func(tw *tabwriter.Writer) error {
		lines := [][]any{
			{"ID:", v.ID},
			{"Name:", v.VisitorName},
			{"Phone:", v.PhoneNumber},
			{"Purpose:", v.Purpose},
			{"Persons:", v.NumberOfPersons},
			{"ID proof:", orDash(strings.TrimSpace(v.IDProofType + " " + v.IDProofNumber))},
			{"Checked in:", orDash(v.CheckInTime)},
			{"Checked out:", orDash(v.CheckOutTime)},
			{"Status:", orDash(v.Status)},
			{"Remarks:", orDash(v.Remarks)},
		}
		for _, l := range lines {
			if err := row(tw, l...); err != nil {
				return err
			}
		}
		return nil
	})
}

func runVisitorsCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "visitors create")
	var req model.CreateVisitorRequest
	var out outputOptions
	fs.StringVar(&req.VisitorName, "name", "", "Visitor name (required)")
	fs.StringVar(&req.PhoneNumber, "phone", "", "Phone number (required)")
	fs.StringVar(&req.Purpose, "purpose", "", "Purpose of visit (required)")
	fs.IntVar(&req.NumberOfPersons, "persons", 1, "Number of persons")
	fs.StringVar(&req.IDProofType, "id-proof-type", "", "Identity document type")
	fs.StringVar(&req.IDProofNumber, "id-proof-number", "", "Identity document number")
	fs.StringVar(&req.CheckInTime, "check-in", "", "Check-in time (defaults to now)")
	fs.StringVar(&req.Remarks, "remarks", "", "Remarks")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if req.CheckInTime == "" {
		req.CheckInTime = now()
	}

	v, err := cmdCtx.Services.FrontOffice.CreateVisitor(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return renderVisitor(cmdCtx, out, v)
}

func runVisitorsCheckout(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "visitors checkout")
	var req model.CheckoutVisitorRequest
	var out outputOptions
	fs.StringVar(&req.CheckOutTime, "at", "", "Check-out time (defaults to now)")
	fs.StringVar(&req.Remarks, "remarks", "", "Remarks")
	addOutputFlags(fs, &out)
	id, err := positional(fs, args, "visitor id")
	if err != nil {
		return err
	}
	if req.CheckOutTime == "" {
		req.CheckOutTime = now()
	}

	v, err := cmdCtx.Services.FrontOffice.CheckoutVisitor(cmdCtx.Ctx, id, req)
	if err != nil {
		return err
	}
	return renderVisitor(cmdCtx, out, v)
}

// Phone calls

func runCalls(cmdCtx *commandContext, args []string) error {
	return dispatch(cmdCtx, "calls", "list", args, map[string]subcommand{
		"list":   {description: "List phone calls", run: runCallsList},
		"get":    {description: "Show one phone call", run: runCallsGet},
		"create": {description: "Log a phone call", run: runCallsCreate},
	})
}

func runCallsList(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "calls list")
	var opts model.PhoneCallListOptions
	var out outputOptions
	var callType string
	addPageFlags(fs, &opts.PageRequest)
	fs.StringVar(&opts.Search, "search", "", "Free-text search")
	fs.StringVar(&callType, "type", "", "INCOMING or OUTGOING")
	fs.StringVar(&opts.FromDate, "from", "", "Earliest call date")
	fs.StringVar(&opts.ToDate, "to", "", "Latest call date")
	fs.StringVar(&opts.Sort, "sort", "", "Sort expression passed to the backend")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	opts.CallType = model.CallType(callType)

	page, err := cmdCtx.Services.FrontOffice.ListPhoneCalls(cmdCtx.Ctx, opts)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, page, func(tw *tabwriter.Writer) error {
		if err := row(tw, "ID", "CALLER", "PHONE", "DATE", "TYPE", "DURATION", "FOLLOW-UP", "STATUS"); err != nil {
			return err
		}
		for _, c := range page.Content {
			if err := row(tw, c.ID, c.CallerName, c.PhoneNumber, c.CallDate, c.CallType,
				orDash(c.CallDuration), orDash(c.NextFollowUpDate), orDash(c.Status)); err != nil {
				return err
			}
		}
		return pageFooter(tw, page.Page, len(page.Content))
	})
}

func runCallsGet(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "calls get")
	var out outputOptions
	addOutputFlags(fs, &out)
	id, err := positional(fs, args, "call id")
	if err != nil {
		return err
	}
	c, err := cmdCtx.Services.FrontOffice.GetPhoneCall(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	return renderCall(cmdCtx, out, c)
}

func renderCall(cmdCtx *commandContext, out outputOptions, c model.PhoneCall) error {
	return render(cmdCtx.Out, out, c, func(tw *tabwriter.Writer) error {
		lines := [][]any{
			{"ID:", c.ID},
			{"Caller:", c.CallerName},
			{"Phone:", c.PhoneNumber},
			{"Date:", c.CallDate},
			{"Type:", c.CallType},
			{"Duration:", orDash(c.CallDuration)},
			{"Description:", orDash(c.Description)},
			{"Follow-up:", orDash(c.NextFollowUpDate)},
			{"Status:", orDash(c.Status)},
			{"Remarks:", orDash(c.Remarks)},
		}
		for _, l := range lines {
			if err := row(tw, l...); err != nil {
				return err
			}
		}
		return nil
	})
}

func runCallsCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "calls create")
	var req model.CreatePhoneCallRequest
	var out outputOptions
	var callType string
	fs.StringVar(&req.CallerName, "caller", "", "Caller name (required)")
	fs.StringVar(&req.PhoneNumber, "phone", "", "Phone number (required)")
	fs.StringVar(&req.CallDate, "date", "", "Call date (defaults to now)")
	fs.StringVar(&callType, "type", string(model.CallTypeIncoming), "INCOMING or OUTGOING")
	fs.StringVar(&req.CallDuration, "duration", "", "Call duration")
	fs.StringVar(&req.Description, "description", "", "What the call was about")
	fs.StringVar(&req.NextFollowUpDate, "follow-up", "", "Next follow-up date")
	fs.StringVar(&req.Remarks, "remarks", "", "Remarks")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	req.CallType = model.CallType(callType)
	if req.CallDate == "" {
		req.CallDate = now()
	}

	c, err := cmdCtx.Services.FrontOffice.CreatePhoneCall(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return renderCall(cmdCtx, out, c)
}

// Academic years

func runYears(cmdCtx *commandContext, args []string) error {
	return dispatch(cmdCtx, "years", "list", args, map[string]subcommand{
		"list":         {description: "List academic years", run: runYearsList},
		"current":      {description: "Show the current academic year", run: runYearsCurrent},
		"create":       {description: "Create an academic year", run: runYearsCreate},
		"update":       {description: "Change fields of an academic year", run: runYearsUpdate},
		"delete":       {description: "Delete an academic year", run: runYearsDelete},
		"make-current": {description: "Mark an academic year as current", run: runYearsMakeCurrent},
	})
}

func yearsTable(years []model.AcademicYear) func(*tabwriter.Writer) error {
	return func(tw *tabwriter.Writer) error {
		if err := row(tw, "ID", "NAME", "START", "END", "CURRENT"); err != nil {
			return err
		}
		for _, y := range years {
			current := ""
			if y.IsCurrent {
				current = "*"
			}
			if err := row(tw, y.ID, y.Name, y.StartDate, y.EndDate, current); err != nil {
				return err
			}
		}
		return nil
	}
}

func runYearsList(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "years list")
	var out outputOptions
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	years, err := cmdCtx.Services.AcademicYears.List(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, years, yearsTable(years))
}

func runYearsCurrent(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "years current")
	var out outputOptions
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	year, err := cmdCtx.Services.AcademicYears.Current(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, year, yearsTable([]model.AcademicYear{year}))
}

func runYearsCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "years create")
	var req model.CreateAcademicYearRequest
	var out outputOptions
	fs.StringVar(&req.Name, "name", "", "Display name, e.g. 2026-27 (required)")
	fs.StringVar(&req.StartDate, "start", "", "Start date (required)")
	fs.StringVar(&req.EndDate, "end", "", "End date (required)")
	fs.BoolVar(&req.IsCurrent, "current", false, "Mark the new year as current")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	year, err := cmdCtx.Services.AcademicYears.Create(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, year, yearsTable([]model.AcademicYear{year}))
}

func runYearsUpdate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "years update")
	var name, start, end string
	var current bool
	var out outputOptions
	fs.StringVar(&name, "name", "", "New display name")
	fs.StringVar(&start, "start", "", "New start date")
	fs.StringVar(&end, "end", "", "New end date")
	fs.BoolVar(&current, "current", false, "Set or clear the current flag")
	addOutputFlags(fs, &out)
	id, err := positional(fs, args, "academic year id")
	if err != nil {
		return err
	}

	// Only flags given on the command line are sent.
	var req model.UpdateAcademicYearRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			req.Name = &name
		case "start":
			req.StartDate = &start
		case "end":
			req.EndDate = &end
		case "current":
			req.IsCurrent = &current
		}
	})

	year, err := cmdCtx.Services.AcademicYears.Update(cmdCtx.Ctx, id, req)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, year, yearsTable([]model.AcademicYear{year}))
}

func runYearsDelete(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "years delete")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	id, err := positional(fs, args, "academic year id")
	if err != nil {
		return err
	}
	if !*yes {
		answer, err := prompt(cmdCtx, bufio.NewReader(cmdCtx.In), fmt.Sprintf("Delete academic year %s? [y/N]", id))
		if err != nil {
			return err
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return writeln(cmdCtx.Out, "Aborted.")
		}
	}
	if err := cmdCtx.Services.AcademicYears.Delete(cmdCtx.Ctx, id); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Deleted academic year %s\n", id)
}

func runYearsMakeCurrent(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "years make-current")
	var out outputOptions
	addOutputFlags(fs, &out)
	id, err := positional(fs, args, "academic year id")
	if err != nil {
		return err
	}
	year, err := cmdCtx.Services.AcademicYears.MakeCurrent(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, year, yearsTable([]model.AcademicYear{year}))
}

// Roles and permissions

func runRoles(cmdCtx *commandContext, args []string) error {
	return dispatch(cmdCtx, "roles", "list", args, map[string]subcommand{
		"list":               {description: "List roles", run: runRolesList},
		"create":             {description: "Create a role", run: runRolesCreate},
		"permissions":        {description: "List the permissions of a role", run: runRolePermissions},
		"assign-permissions": {description: "Replace the permissions of a role", run: runAssignPermissions},
	})
}

func runRolesList(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "roles list")
	var out outputOptions
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	roles, err := cmdCtx.Services.Admin.ListRoles(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, roles, rolesTable(roles))
}

func rolesTable(roles []model.RoleRecord) func(*tabwriter.Writer) error {
	return func(tw *tabwriter.Writer) error {
		if err := row(tw, "ID", "NAME", "DESCRIPTION"); err != nil {
			return err
		}
		for _, r := range roles {
			if err := row(tw, r.ID, r.Name, orDash(r.Description)); err != nil {
				return err
			}
		}
		return nil
	}
}

func runRolesCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "roles create")
	var req model.CreateRoleRequest
	var out outputOptions
	fs.StringVar(&req.Name, "name", "", "Role name (required)")
	fs.StringVar(&req.Description, "description", "", "Role description")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	role, err := cmdCtx.Services.Admin.CreateRole(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, role, rolesTable([]model.RoleRecord{role}))
}

func runRolePermissions(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "roles permissions")
	var out outputOptions
	addOutputFlags(fs, &out)
	roleID, err := positional(fs, args, "role id")
	if err != nil {
		return err
	}
	perms, err := cmdCtx.Services.Admin.RolePermissions(cmdCtx.Ctx, roleID)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, perms, permissionsTable(perms))
}

func runAssignPermissions(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "roles assign-permissions")
	permissions := fs.String("permissions", "", "Comma-separated permission ids (required)")
	roleID, err := positional(fs, args, "role id")
	if err != nil {
		return err
	}
	req := model.AssignPermissionsRequest{RoleID: roleID, PermissionIDs: splitList(*permissions)}
	if err := cmdCtx.Services.Admin.AssignPermissionsToRole(cmdCtx.Ctx, req); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Assigned %d permission(s) to role %s\n", len(req.PermissionIDs), roleID)
}

func runPermissions(cmdCtx *commandContext, args []string) error {
	return dispatch(cmdCtx, "permissions", "list", args, map[string]subcommand{
		"list":   {description: "List permissions", run: runPermissionsList},
		"create": {description: "Create a permission", run: runPermissionsCreate},
	})
}

func permissionsTable(perms []model.Permission) func(*tabwriter.Writer) error {
	return func(tw *tabwriter.Writer) error {
		if err := row(tw, "ID", "CODE", "MODULE", "DESCRIPTION"); err != nil {
			return err
		}
		for _, p := range perms {
			if err := row(tw, p.ID, p.Code, p.Module, orDash(p.Description)); err != nil {
				return err
			}
		}
		return nil
	}
}

func runPermissionsList(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "permissions list")
	var out outputOptions
	module := fs.String("module", "", "Only show permissions of this module")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	perms, err := cmdCtx.Services.Admin.ListPermissions(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	if m := strings.TrimSpace(*module); m != "" {
		filtered := perms[:0:0]
		for _, p := range perms {
			if strings.EqualFold(p.Module, m) {
				filtered = append(filtered, p)
			}
		}
		perms = filtered
	}
	return render(cmdCtx.Out, out, perms, permissionsTable(perms))
}

func runPermissionsCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "permissions create")
	var req model.CreatePermissionRequest
	var out outputOptions
	fs.StringVar(&req.Code, "code", "", "Permission code, e.g. visitors.read (required)")
	fs.StringVar(&req.Module, "module", "", "Module the permission belongs to (required)")
	fs.StringVar(&req.Description, "description", "", "Description")
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	perm, err := cmdCtx.Services.Admin.CreatePermission(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, perm, permissionsTable([]model.Permission{perm}))
}

func runAssignRoles(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "assign-roles")
	roles := fs.String("roles", "", "Comma-separated role ids (required)")
	userID, err := positional(fs, args, "user id")
	if err != nil {
		return err
	}
	req := model.AssignRolesRequest{UserID: userID, RoleIDs: splitList(*roles)}
	if err := cmdCtx.Services.Admin.AssignRolesToUser(cmdCtx.Ctx, req); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Assigned %d role(s) to user %s\n", len(req.RoleIDs), userID)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dashboard

func runDashboard(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "dashboard")
	var out outputOptions
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	summary, err := cmdCtx.Services.Dashboard.Summary(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return render(cmdCtx.Out, out, summary, func(tw *tabwriter.Writer) error {
		year := "-"
		if summary.CurrentAcademicYear != nil {
			year = summary.CurrentAcademicYear.Name
		}
		return dashboardTable(tw, summary, year)
	})
}

func dashboardTable(tw *tabwriter.Writer, summary service.DashboardSummary, year string) error {
	if err := row(tw, "Academic year:", year); err != nil {
		return err
	}
	if err := row(tw, "Visitors:", summary.Visitors); err != nil {
		return err
	}
	return row(tw, "Phone calls:", summary.PhoneCalls)
}
