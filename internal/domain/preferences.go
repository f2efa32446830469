package domain

// Preferences are the user settings stored on the server.
type Preferences struct {
	NewGradeNotifications                string `json:"new_grade_notifications"`
	NewCommentNotifications              string `json:"new_comment_notifications"`
	NewAssignmentNotifications           string `json:"new_assignment_notifications"`
	NewCourseNotifications               string `json:"new_course_notifications"`
	NewEntryNotifications                string `json:"new_entry_notifications"`
	NewNodeNotifications                 string `json:"new_node_notifications"`
	NewJournalImportRequestNotifications string `json:"new_journal_import_request_notifications"`
	HidePastDeadlinesOfAssignments       []int  `json:"hide_past_deadlines_of_assignments"`
	GroupOnlyNotifications               bool   `json:"group_only_notifications"`
	UpcomingDeadlineReminder             string `json:"upcoming_deadline_reminder"`
	ShowFormatTutorial                   bool   `json:"show_format_tutorial"`
	AutoSelectUngradedEntry              bool   `json:"auto_select_ungraded_entry"`
	AutoProceedNextJournal               bool   `json:"auto_proceed_next_journal"`
	HideVersionAlert                     string `json:"hide_version_alert"`
	GradeButtonSetting                   string `json:"grade_button_setting"`
	CommentButtonSetting                 string `json:"comment_button_setting"`
}

// HidesPastDeadlines reports whether past deadlines are hidden for the
// assignment.
func (p Preferences) HidesPastDeadlines(aID int) bool {
	for _, id := range p.HidePastDeadlinesOfAssignments {
		if id == aID {
			return true
		}
	}
	return false
}
