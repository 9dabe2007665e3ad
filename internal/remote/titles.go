package remote

import "context"

// OpenTitles collects the titles of every open task in a list, fetching all pages.
func OpenTitles(ctx context.Context, svc Service, listID string) (map[string]bool, error) {
	titles := make(map[string]bool)
	for page := 1; ; page++ {
		tasks, err := svc.ListOpenTasks(ctx, listID, page)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			titles[t.Title] = true
		}
		if len(tasks) < PageSize {
			return titles, nil
		}
	}
}
