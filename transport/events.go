package transport

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/swf/types"

	"github.com/swf-go/decider/internal"
)

// decodeEvent translates one types.HistoryEvent into the internal.Event
// union (spec §4.1). Event kinds the engine has no case for return nil and
// are dropped by the caller.
func decodeEvent(e types.HistoryEvent) internal.Event {
	id := aws.ToInt64(e.EventId)

	switch e.EventType {
	case types.EventTypeActivityTaskScheduled:
		a := e.ActivityTaskScheduledEventAttributes
		ev := &internal.ActivityScheduled{CallKey: aws.ToString(a.ActivityId)}
		ev.ID = id
		return ev

	case types.EventTypeActivityTaskCompleted:
		a := e.ActivityTaskCompletedEventAttributes
		ev := &internal.ActivityCompleted{ScheduledID: aws.ToInt64(a.ScheduledEventId), Result: aws.ToString(a.Result)}
		ev.ID = id
		return ev

	case types.EventTypeActivityTaskFailed:
		a := e.ActivityTaskFailedEventAttributes
		ev := &internal.ActivityFailed{ScheduledID: aws.ToInt64(a.ScheduledEventId), Reason: aws.ToString(a.Reason)}
		ev.ID = id
		return ev

	case types.EventTypeActivityTaskTimedOut:
		a := e.ActivityTaskTimedOutEventAttributes
		ev := &internal.ActivityTimedOut{ScheduledID: aws.ToInt64(a.ScheduledEventId)}
		ev.ID = id
		return ev

	case types.EventTypeScheduleActivityTaskFailed:
		a := e.ScheduleActivityTaskFailedEventAttributes
		return &internal.ScheduleActivityFailed{CallKey: aws.ToString(a.ActivityId), Cause: string(a.Cause)}

	case types.EventTypeStartChildWorkflowExecutionInitiated:
		a := e.StartChildWorkflowExecutionInitiatedEventAttributes
		return &internal.ChildWorkflowInitiated{WorkflowID: aws.ToString(a.WorkflowId)}

	case types.EventTypeChildWorkflowExecutionCompleted:
		a := e.ChildWorkflowExecutionCompletedEventAttributes
		return &internal.ChildWorkflowCompleted{
			WorkflowID: aws.ToString(a.WorkflowExecution.WorkflowId),
			Result:     aws.ToString(a.Result),
		}

	case types.EventTypeChildWorkflowExecutionFailed:
		a := e.ChildWorkflowExecutionFailedEventAttributes
		return &internal.ChildWorkflowFailed{
			WorkflowID: aws.ToString(a.WorkflowExecution.WorkflowId),
			Reason:     aws.ToString(a.Reason),
		}

	case types.EventTypeChildWorkflowExecutionTimedOut:
		a := e.ChildWorkflowExecutionTimedOutEventAttributes
		return &internal.ChildWorkflowTimedOut{WorkflowID: aws.ToString(a.WorkflowExecution.WorkflowId)}

	case types.EventTypeStartChildWorkflowExecutionFailed:
		a := e.StartChildWorkflowExecutionFailedEventAttributes
		return &internal.StartChildWorkflowFailed{WorkflowID: aws.ToString(a.WorkflowId), Cause: string(a.Cause)}

	case types.EventTypeTimerStarted:
		a := e.TimerStartedEventAttributes
		return &internal.TimerStarted{TimerID: aws.ToString(a.TimerId)}

	case types.EventTypeTimerFired:
		a := e.TimerFiredEventAttributes
		return &internal.TimerFired{TimerID: aws.ToString(a.TimerId)}

	case types.EventTypeWorkflowExecutionStarted:
		a := e.WorkflowExecutionStartedEventAttributes
		return &internal.WorkflowExecutionStarted{
			Input:            aws.ToString(a.Input),
			TaskList:         taskListName(a.TaskList),
			WorkflowDuration: int64(parseDuration(a.ExecutionStartToCloseTimeout).Seconds()),
			DecisionDuration: int64(parseDuration(a.TaskStartToCloseTimeout).Seconds()),
			ChildPolicy:      internal.ChildPolicy(a.ChildPolicy),
			Tags:             a.TagList,
		}

	case types.EventTypeDecisionTaskCompleted:
		a := e.DecisionTaskCompletedEventAttributes
		return &internal.DecisionTaskCompleted{
			ExecutionContext: aws.ToString(a.ExecutionContext),
			StartedEventID:   aws.ToInt64(a.StartedEventId),
		}

	default:
		return nil
	}
}

// encodeDecision translates one internal.Decision into the wire
// types.Decision (spec §4.4, §6).
func encodeDecision(d internal.Decision) types.Decision {
	switch d.Kind {
	case internal.DecisionStartTimer:
		return types.Decision{
			DecisionType: types.DecisionTypeStartTimer,
			StartTimerDecisionAttributes: &types.StartTimerDecisionAttributes{
				TimerId:            aws.String(d.TimerID),
				StartToFireTimeout: aws.String(d.StartToFireTimeout),
			},
		}

	case internal.DecisionScheduleActivityTask:
		return types.Decision{
			DecisionType: types.DecisionTypeScheduleActivityTask,
			ScheduleActivityTaskDecisionAttributes: &types.ScheduleActivityTaskDecisionAttributes{
				ActivityId:             aws.String(d.ActivityCallKey),
				ActivityType:           &types.ActivityType{Name: aws.String(d.ActivityType.Name), Version: aws.String(d.ActivityType.Version)},
				Input:                  aws.String(d.ActivityInput),
				TaskList:               taskListOf(d.ActivityTaskList),
				ScheduleToStartTimeout: nonEmpty(d.ScheduleToStartTimeout),
				ScheduleToCloseTimeout: nonEmpty(d.ScheduleToCloseTimeout),
				StartToCloseTimeout:    nonEmpty(d.StartToCloseTimeout),
				HeartbeatTimeout:       nonEmpty(d.HeartbeatTimeout),
			},
		}

	case internal.DecisionStartChildWorkflowExecution:
		return types.Decision{
			DecisionType: types.DecisionTypeStartChildWorkflowExecution,
			StartChildWorkflowExecutionDecisionAttributes: &types.StartChildWorkflowExecutionDecisionAttributes{
				WorkflowId:                   aws.String(d.ChildWorkflowID),
				WorkflowType:                 &types.WorkflowType{Name: aws.String(d.ChildType.Name), Version: aws.String(d.ChildType.Version)},
				Input:                        aws.String(d.ChildInput),
				TaskList:                     taskListOf(d.ChildTaskList),
				ExecutionStartToCloseTimeout: nonEmpty(d.ChildWorkflowDuration),
				TaskStartToCloseTimeout:      nonEmpty(d.ChildDecisionDuration),
			},
		}

	case internal.DecisionCompleteWorkflowExecution:
		return types.Decision{
			DecisionType: types.DecisionTypeCompleteWorkflowExecution,
			CompleteWorkflowExecutionDecisionAttributes: &types.CompleteWorkflowExecutionDecisionAttributes{
				Result: aws.String(d.Result),
			},
		}

	case internal.DecisionFailWorkflowExecution:
		return types.Decision{
			DecisionType: types.DecisionTypeFailWorkflowExecution,
			FailWorkflowExecutionDecisionAttributes: &types.FailWorkflowExecutionDecisionAttributes{
				Reason: aws.String(d.Reason),
			},
		}

	case internal.DecisionContinueAsNewWorkflowExecution:
		return types.Decision{
			DecisionType: types.DecisionTypeContinueAsNewWorkflowExecution,
			ContinueAsNewWorkflowExecutionDecisionAttributes: &types.ContinueAsNewWorkflowExecutionDecisionAttributes{
				Input:                        aws.String(d.ContinueInput),
				TaskList:                     taskListOf(d.ContinueTaskList),
				ExecutionStartToCloseTimeout: nonEmpty(d.ContinueWorkflowDuration),
				TaskStartToCloseTimeout:      nonEmpty(d.ContinueDecisionDuration),
				ChildPolicy:                  types.ChildPolicy(d.ContinueChildPolicy),
				TagList:                      d.ContinueTags,
			},
		}

	default:
		return types.Decision{}
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
