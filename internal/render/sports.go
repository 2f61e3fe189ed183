package render

import (
	"fmt"
	"strings"

	"dailybrief/internal/core"
)

const (
	maxRecentMatches = 5
	maxStandingRows  = 6
	// Positions at or above this threshold are Champions League spots and
	// rendered in bold.
	championsLeagueCutoff = 4
)

// renderSportsSection builds the football section appended after all article
// groups. It is pure presentation: a missing or empty sub-block simply
// leaves that part out, and a fully empty payload renders nothing.
func renderSportsSection(data *core.SportsData) string {
	matches := renderRecentMatches(data.Matches)
	standings := renderStandings(data.Standings)
	if matches == "" && standings == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("## ⚽ 英超快报\n\n")
	sb.WriteString(matches)
	sb.WriteString(standings)
	sb.WriteString("---\n\n")
	return sb.String()
}

// renderRecentMatches lists up to maxRecentMatches finished fixtures with
// the winner in bold.
func renderRecentMatches(list *core.MatchList) string {
	if list == nil || len(list.Matches) == 0 {
		return ""
	}

	var sb strings.Builder
	count := 0
	for _, match := range list.Matches {
		if count >= maxRecentMatches {
			break
		}
		if match.Status != "FINISHED" {
			continue
		}

		switch {
		case match.HomeScore > match.AwayScore:
			sb.WriteString(fmt.Sprintf("- **%s** %d - %d %s\n", match.HomeTeam, match.HomeScore, match.AwayScore, match.AwayTeam))
		case match.AwayScore > match.HomeScore:
			sb.WriteString(fmt.Sprintf("- %s %d - %d **%s**\n", match.HomeTeam, match.HomeScore, match.AwayScore, match.AwayTeam))
		default:
			sb.WriteString(fmt.Sprintf("- %s %d - %d %s\n", match.HomeTeam, match.HomeScore, match.AwayScore, match.AwayTeam))
		}
		count++
	}

	if count == 0 {
		return ""
	}

	return "### 📅 最近比赛\n\n" + sb.String() + "\n"
}

// renderStandings renders the top of the league table as a markdown table,
// bolding the Champions League positions.
func renderStandings(table *core.StandingTable) string {
	if table == nil || len(table.Teams) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("### 🏆 积分榜 Top %d\n\n", maxStandingRows))
	sb.WriteString("| # | 球队 | 场 | 胜 | 平 | 负 | 积分 |\n")
	sb.WriteString("|---|------|----|----|----|----|------|\n")

	for i, team := range table.Teams {
		if i >= maxStandingRows {
			break
		}
		if team.Position <= championsLeagueCutoff {
			sb.WriteString(fmt.Sprintf("| **%d** | **%s** | %d | %d | %d | %d | **%d** |\n",
				team.Position, team.Name, team.Played, team.Won, team.Draw, team.Lost, team.Points))
		} else {
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %d | %d | %d | %d |\n",
				team.Position, team.Name, team.Played, team.Won, team.Draw, team.Lost, team.Points))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}
