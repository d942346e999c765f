package github

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

// APIRoot is the production API base URL.
const APIRoot = "https://api.github.com"

// endpointTemplates maps each resource kind to its listing paths, with
// owner and repository substituted in order. Issues are listed twice:
// the default listing returns only open issues, closed ones need an
// explicit state filter.
var endpointTemplates = map[domain.Kind][]string{
	domain.KindEvent:        {"/repos/%s/%s/events"},
	domain.KindIssue:        {"/repos/%s/%s/issues", "/repos/%s/%s/issues?state=closed"},
	domain.KindPullRequest:  {"/repos/%s/%s/pulls"},
	domain.KindMilestone:    {"/repos/%s/%s/milestones"},
	domain.KindCollaborator: {"/repos/%s/%s/collaborators"},
	domain.KindLabel:        {"/repos/%s/%s/labels"},
}

// endpointURL builds the first request URL for one listing call.
func endpointURL(base, template, owner, repo string, pageSize int) string {
	u := base + fmt.Sprintf(template, owner, repo)
	if pageSize > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += fmt.Sprintf("%sper_page=%d", sep, pageSize)
	}
	return u
}
