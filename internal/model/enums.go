package model

import "strconv"

// Status 链接状态
type Status string

const (
	StatusInProgress      Status = "In Progress"
	StatusLive            Status = "Link Works!"
	StatusBlocked         Status = "Blocked"
	StatusLiveToCustomers Status = "Live to Customers"
)

// Statuses 表单中状态选项的顺序
var Statuses = []Status{StatusInProgress, StatusLive, StatusBlocked, StatusLiveToCustomers}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Source 推广渠道
type Source string

const (
	SourceQuickstart Source = "Quickstart"
	SourceLinkedIn   Source = "LinkedIn"
	SourceMedium     Source = "Medium"
	SourceGitHub     Source = "GitHub"
	SourceDocs       Source = "Docs"
)

// Sources 表单中渠道选项的顺序
var Sources = []Source{SourceQuickstart, SourceLinkedIn, SourceMedium, SourceGitHub, SourceDocs}

// Valid 是否为已知渠道
func (s Source) Valid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
