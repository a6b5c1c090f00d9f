package remote

import "sort"

// View is the read-only picture of a remote game, built only from what the
// authority sent. Listeners each get their own copy.
type View struct {
	PlayerID   int // -1 until the authority assigns one
	Objects    []GameObject
	GameOver   bool
	InProgress bool
	Scores     map[int]int
	Names      map[int]string
}

// MyScore returns the score the authority reports for this client.
func (v View) MyScore() int {
	return v.Scores[v.PlayerID]
}

// Snake returns the segments of playerID's snake, head first.
func (v View) Snake(playerID int) []GameObject {
	var head, body []GameObject
	for _, o := range v.Objects {
		if o.PlayerID != playerID {
			continue
		}
		switch o.Type {
		case TypeSnakeHead:
			head = append(head, o)
		case TypeSnakeBody:
			body = append(body, o)
		}
	}
	return append(head, body...)
}

// Fruits returns every fruit on the board.
func (v View) Fruits() []GameObject {
	var out []GameObject
	for _, o := range v.Objects {
		if o.Type == TypeFruit {
			out = append(out, o)
		}
	}
	return out
}

// Ranking returns player IDs ordered by score, best first.
func (v View) Ranking() []int {
	ids := make([]int, 0, len(v.Scores))
	for id := range v.Scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if v.Scores[ids[i]] != v.Scores[ids[j]] {
			return v.Scores[ids[i]] > v.Scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (v View) clone() View {
	c := v
	c.Objects = append([]GameObject(nil), v.Objects...)
	c.Scores = make(map[int]int, len(v.Scores))
	for k, s := range v.Scores {
		c.Scores[k] = s
	}
	c.Names = make(map[int]string, len(v.Names))
	for k, n := range v.Names {
		c.Names[k] = n
	}
	return c
}
