package budget

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"spendtrack/internal/api"
)

// Plan is the derived view of one generated batch of budget records.
type Plan struct {
	ID      string
	Name    string
	Total   float64
	Budgets []api.Budget
}

// MonthGroup buckets plans under a month/year heading. Month is 0 for the
// catch-all "Other" bucket.
type MonthGroup struct {
	Month time.Month
	Year  int
	Plans []Plan
}

// Label renders the bucket heading.
func (g MonthGroup) Label() string {
	if g.Month == 0 {
		return "Other"
	}
	return g.Month.String() + " " + strconv.Itoa(g.Year)
}

var yearPattern = regexp.MustCompile(`\b20\d{2}\b`)

// GroupPlans aggregates budget records into plans and buckets the plans by a
// month/year key inferred from each plan's name. Records without a plan ID
// are ignored. Buckets are ordered by year descending, then calendar month
// ascending within a year, with "Other" last. This is a presentation view
// recomputed on every fetch; nothing here is persisted.
//
// The month/year inference is a name heuristic: the first month name
// occurring in the plan name wins, a 4-digit token starting "20" supplies the
// year, and the current year is assumed when no year token is present. Plans
// whose names carry no month name land in the "Other" bucket.
func GroupPlans(budgets []api.Budget) []MonthGroup {
	plans := map[string]*Plan{}
	for _, b := range budgets {
		if b.PlanID == "" {
			continue
		}
		p, ok := plans[b.PlanID]
		if !ok {
			p = &Plan{ID: b.PlanID, Name: b.PlanName}
			plans[b.PlanID] = p
		}
		p.Total += b.Amount
		p.Budgets = append(p.Budgets, b)
	}

	type bucketKey struct {
		month time.Month
		year  int
	}
	buckets := map[bucketKey][]Plan{}
	for _, p := range plans {
		sort.Slice(p.Budgets, func(i, j int) bool {
			return DisplayName(Category(p.Budgets[i].Category)) < DisplayName(Category(p.Budgets[j].Category))
		})
		month, year := inferMonthYear(p.Name)
		key := bucketKey{month: month, year: year}
		buckets[key] = append(buckets[key], *p)
	}

	groups := make([]MonthGroup, 0, len(buckets))
	for key, members := range buckets {
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		groups = append(groups, MonthGroup{Month: key.month, Year: key.year, Plans: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		// "Other" sorts last.
		if (gi.Month == 0) != (gj.Month == 0) {
			return gj.Month == 0
		}
		if gi.Year != gj.Year {
			return gi.Year > gj.Year
		}
		return gi.Month < gj.Month
	})
	return groups
}

// inferMonthYear extracts a month and year from a free-text plan name. The
// returned month is 0 when no month name occurs in the name; the year
// defaults to the current year when no "20xx" token is found.
func inferMonthYear(name string) (time.Month, int) {
	lower := strings.ToLower(name)

	month := time.Month(0)
	best := -1
	for m := time.January; m <= time.December; m++ {
		idx := strings.Index(lower, strings.ToLower(m.String()))
		if idx >= 0 && (best == -1 || idx < best) {
			best = idx
			month = m
		}
	}
	if month == 0 {
		return 0, 0
	}

	year := time.Now().Year()
	if token := yearPattern.FindString(name); token != "" {
		if parsed, err := strconv.Atoi(token); err == nil {
			year = parsed
		}
	}
	return month, year
}
