/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import "time"

const sampleCSV = `date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup
2020-01-01,A,B,20,10,Six Nations,Stade de France,Saint-Denis,France,False,False
2020-02-01,B,A,15,15,Six Nations,,,,False,False
2015-10-31,New Zealand,Australia,34.0,17.0,Rugby World Cup Final 2015,Twickenham,London,England,True,True
`

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleMatches() []Match {
	return []Match{
		{Date: day(2020, 1, 1), HomeTeam: "A", AwayTeam: "B", HomeScore: 20,
			AwayScore: 10, Competition: "Six Nations", Stadium: "Stade de France",
			City: "Saint-Denis", Country: "France"},
		{Date: day(2020, 2, 1), HomeTeam: "B", AwayTeam: "A", HomeScore: 15,
			AwayScore: 15, Competition: "Six Nations"},
		{Date: day(2015, 10, 31), HomeTeam: "New Zealand", AwayTeam: "Australia",
			HomeScore: 34, AwayScore: 17, Competition: "Rugby World Cup Final 2015",
			Stadium: "Twickenham", City: "London", Country: "England",
			Neutral: true, WorldCup: true},
	}
}
