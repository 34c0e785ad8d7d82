package league

// GenerateSchedule returns a single round-robin schedule for the provided
// teams using the circle method. With an odd number of teams each round has
// one team on a bye. Rounds and match numbers start at 1.
func GenerateSchedule(teams []string) []Fixture {
	rounds := pairRounds(teams)

	var fixtures []Fixture
	match := 1
	for i, rnd := range rounds {
		for _, p := range rnd {
			fixtures = append(fixtures, Fixture{
				Round:       i + 1,
				MatchNumber: match,
				HomeTeam:    p[0],
				AwayTeam:    p[1],
			})
			match++
		}
	}
	return fixtures
}

// GenerateFullSeason returns a double round-robin: the single schedule
// followed by the same rounds with home and away swapped.
func GenerateFullSeason(teams []string) []Fixture {
	firstHalf := GenerateSchedule(teams)
	if len(firstHalf) == 0 {
		return nil
	}

	half := firstHalf[len(firstHalf)-1].Round
	fixtures := make([]Fixture, 0, 2*len(firstHalf))
	fixtures = append(fixtures, firstHalf...)
	for i, f := range firstHalf {
		fixtures = append(fixtures, Fixture{
			Round:       f.Round + half,
			MatchNumber: len(firstHalf) + i + 1,
			HomeTeam:    f.AwayTeam,
			AwayTeam:    f.HomeTeam,
		})
	}
	return fixtures
}

func pairRounds(names []string) [][][2]string {
	teams := make([]*string, 0, len(names)+1)
	seen := make(map[string]bool, len(names))
	for i := range names {
		if seen[names[i]] {
			continue
		}
		seen[names[i]] = true
		teams = append(teams, &names[i])
	}
	if len(teams) < 2 {
		return nil
	}

	// nil is the bye placeholder
	if len(teams)%2 != 0 {
		teams = append(teams, nil)
	}
	n := len(teams)

	rounds := make([][][2]string, n-1)
	for i := 0; i < n-1; i++ {
		var round [][2]string
		for j := 0; j < n/2; j++ {
			home := teams[j]
			away := teams[n-1-j]
			if home != nil && away != nil {
				round = append(round, [2]string{*home, *away})
			}
		}
		rounds[i] = round

		// rotate everyone except the first team
		last := teams[n-1]
		copy(teams[2:], teams[1:n-1])
		teams[1] = last
	}
	return rounds
}
