package handlers

import (
	"errors"
	"fmt"
	"strings"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
	"slack_shifumi/internal/service"
	"slack_shifumi/internal/stats"
)

// userErrorText translates a domain error into the French message shown
// to the acting player. Unknown errors get the generic storage message.
func userErrorText(err error) string {
	var invalid *game.ErrInvalidGesture
	switch {
	case errors.As(err, &invalid):
		return fmt.Sprintf("Geste invalide ! Valeurs possibles : %s, %s, %s", game.Rock, game.Paper, game.Scissors)
	case errors.Is(err, service.ErrSelfPlay):
		return "Tu ne peux pas jouer contre toi-même !"
	case errors.Is(err, service.ErrChallengeNotFound):
		return "Défi non trouvé ou expiré."
	case errors.Is(err, service.ErrNotChallengeTarget):
		return "Ce défi ne t'est pas adressé !"
	case errors.Is(err, service.ErrChallengePending):
		return "Un défi est déjà en cours entre vous deux !"
	case errors.Is(err, service.ErrMatchUnavailable):
		return "Partie non trouvée ou expirée."
	default:
		return "Une erreur s'est produite, réessaie plus tard."
	}
}

func formatWaiting(name string, g game.Gesture) string {
	return fmt.Sprintf("%s a joué %s. En attente d'un adversaire !", name, g)
}

func formatChallengeCreated(challenger, target string, g game.Gesture) string {
	return fmt.Sprintf("%s défie %s ! %s a déjà joué %s en secret...", challenger, target, challenger, g.Emoji())
}

func formatResult(m *domain.Match, out game.Outcome, p1Name, p2Name string) string {
	var verdict string
	switch out {
	case game.Draw:
		verdict = "Egalité !"
	case game.Player1Wins:
		verdict = fmt.Sprintf("%s gagne !", p1Name)
	default:
		verdict = fmt.Sprintf("%s gagne !", p2Name)
	}
	return fmt.Sprintf("Résultat:\n%s a joué %s %s\n%s a joué %s %s\n%s",
		p1Name, m.Player1Gesture, m.Player1Gesture.Emoji(),
		p2Name, m.Player2.Gesture, m.Player2.Gesture.Emoji(),
		verdict)
}

func formatMoveStats(header string, moves []stats.MoveStat) string {
	lines := []string{header, ""}
	for _, st := range moves {
		lines = append(lines, fmt.Sprintf("%s *%s* (%.1f%% des coups) - `%dW/%dL/%dD` (WR: %.1f%%)",
			st.Gesture.Emoji(), st.Gesture, st.PlayRate, st.Wins, st.Losses, st.Draws, st.WinRate))
	}
	return strings.Join(lines, "\n")
}

func formatBreakdown(header string, b stats.MoveBreakdown) string {
	return formatMoveStats(header+"\n\n*En ouverture*", b.First) +
		"\n" + formatMoveStats("\n*En réponse*", b.Second)
}

func formatLeaderboard(board []stats.LeaderboardEntry, unranked []stats.UnrankedEntry, resolve func(string) string) string {
	if len(board) == 0 && len(unranked) == 0 {
		return "Personne n'a encore joué cette année ! 😢"
	}

	lines := []string{"🏆 *Classement de l'année* 🏆", ""}
	medals := []string{"🥇", "🥈", "🥉"}
	for i, e := range board {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s %s - %.1f%% (`%dW/%dL/%dD` sur %d parties)",
			rank, resolve(e.PlayerID), e.WinRate, e.Wins, e.Losses, e.Draws, e.TotalGames))
	}

	if len(unranked) > 0 {
		lines = append(lines, "", "*En attente de classement* (5 parties minimum)")
		for _, e := range unranked {
			lines = append(lines, fmt.Sprintf("• %s - %d partie(s), encore %d pour être classé",
				resolve(e.PlayerID), e.Games, e.GamesNeeded))
		}
	}
	return strings.Join(lines, "\n")
}

func formatFullStats(full *stats.FullStats, resolve func(string) string) string {
	name := resolve(full.PlayerID)
	lines := []string{
		fmt.Sprintf("📋 *Bilan de %s* 📋", name),
		"",
		fmt.Sprintf("Total: `%d` parties - `%dW/%dL/%dD` (WR: %.1f%%)",
			full.TotalGames, full.Wins, full.Losses, full.Draws, full.WinRate),
	}
	if full.Nemesis != nil {
		lines = append(lines, fmt.Sprintf("😈 Némésis : %s (%d défaites)", resolve(full.Nemesis.OpponentID), full.Nemesis.Count))
	}
	if full.BestAgainst != nil {
		lines = append(lines, fmt.Sprintf("💪 Victime favorite : %s (%d victoires)", resolve(full.BestAgainst.OpponentID), full.BestAgainst.Count))
	}
	if full.MostDraws != nil {
		lines = append(lines, fmt.Sprintf("🤝 Égalités : %s (%d)", resolve(full.MostDraws.OpponentID), full.MostDraws.Count))
	}
	return strings.Join(lines, "\n")
}

func formatHeadToHead(h *stats.HeadToHead, resolve func(string) string) string {
	me, them := resolve(h.PlayerID), resolve(h.OpponentID)
	text := formatMoveStats(
		fmt.Sprintf("🤼 *Stats de %s contre %s* 🤼\n\nTotal: `%d` parties", me, them, h.TotalGames),
		h.Moves)

	if h.OpponentFavorite != nil && h.RecommendedCounter != nil {
		fav, counter := *h.OpponentFavorite, *h.RecommendedCounter
		text += fmt.Sprintf("\n\n💡 %s joue souvent %s *%s*\n👉 Essaie %s *%s* pour contrer !",
			them, fav.Emoji(), fav, counter.Emoji(), counter)
	}
	return text
}

func formatHeadToHeadBreakdown(b *stats.HeadToHeadBreakdown, resolve func(string) string) string {
	text := formatHeadToHead(&b.HeadToHead, resolve)
	text += "\n" + formatBreakdown("", b.Breakdown)
	if b.BestOpener != nil {
		text += fmt.Sprintf("\n\n🚀 Meilleure ouverture : %s *%s* (WR: %.1f%%)",
			b.BestOpener.Gesture.Emoji(), b.BestOpener.Gesture, b.BestOpener.WinRate)
	}
	if b.BestCounter != nil {
		text += fmt.Sprintf("\n🛡️ Meilleure réponse : %s *%s* (WR: %.1f%%)",
			b.BestCounter.Gesture.Emoji(), b.BestCounter.Gesture, b.BestCounter.WinRate)
	}
	return text
}

func formatPendingChallenges(challenges []*domain.Match, resolve func(string) string) string {
	if len(challenges) == 0 {
		return "Aucun défi en attente ! 🎮"
	}
	lines := []string{"🎯 *Défis en attente* 🎯", ""}
	for _, m := range challenges {
		lines = append(lines, fmt.Sprintf("• %s → %s (depuis %s)",
			resolve(m.Player1ID), resolve(m.Challenge.TargetID), m.CreatedAt.Format("15:04")))
	}
	return strings.Join(lines, "\n")
}
