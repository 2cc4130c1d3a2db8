package ui

// closeAll asks every open tab to close, right to left. Each tab is only
// asked after its right neighbor agreed, so a cancelled unsaved-changes
// prompt anywhere aborts the rest of the chain. When the leftmost tab
// agrees the application quits.
func (a *App) closeAll() {
	tabs := append([]Tab(nil), a.tabs...)

	done := func() { a.quitting = true }
	for i := range tabs {
		tab := tabs[i]
		next := done
		done = func() {
			tab.Close(func() {
				a.removeTab(tab)
				next()
			})
		}
	}
	done()
}

// closeCurrentTab closes only the focused tab, subject to its own
// unsaved-changes prompt.
func (a *App) closeCurrentTab() {
	tab := a.currentTab()
	if tab == nil {
		return
	}
	tab.Close(func() { a.removeTab(tab) })
}

func (a *App) removeTab(tab Tab) {
	for i, t := range a.tabs {
		if t == tab {
			a.tabs = append(a.tabs[:i], a.tabs[i+1:]...)
			a.syncTabs()
			return
		}
	}
}
